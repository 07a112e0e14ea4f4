package domain

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is the attendee's reply state.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPAttending RSVPStatus = "attending"
	RSVPDeclined  RSVPStatus = "declined"
)

// Attendee is a guest of the invitation identified by UserID. The
// invitation token grants prefilled access to the RSVP form without
// authentication; it is an unrelated write path to the payment tables.
type Attendee struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FirstName       string
	LastName        string
	Contact         string
	RSVPStatus      RSVPStatus
	PlusOne         bool
	PlusOneName     string
	InvitationToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAttendee creates a guest record with a pending reply.
func NewAttendee(userID uuid.UUID, firstName, lastName, contact string) *Attendee {
	now := time.Now().UTC()
	return &Attendee{
		ID:              uuid.New(),
		UserID:          userID,
		FirstName:       firstName,
		LastName:        lastName,
		Contact:         contact,
		RSVPStatus:      RSVPPending,
		InvitationToken: uuid.New().String(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ValidRSVPStatus reports whether s is one of the known reply states.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPDeclined:
		return true
	default:
		return false
	}
}
