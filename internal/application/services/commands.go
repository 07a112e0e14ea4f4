package services

import (
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

// PublicationCheckoutCommand starts a publication-fee checkout for an
// invitation owner.
type PublicationCheckoutCommand struct {
	UserID      uuid.UUID
	Amount      int64
	Description string
	PayerEmail  string
	PayerName   string
}

// GiftCheckoutCommand starts a gift checkout for a wish-list item. Guests
// are unauthenticated; the item id is the only trust anchor.
type GiftCheckoutCommand struct {
	ItemID     uuid.UUID
	Amount     int64
	PayerEmail string
	PayerName  string
}

// CheckoutSession is what the browser needs to hand the user over to the
// hosted checkout.
type CheckoutSession struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	PreferenceID string    `json:"preference_id"`
	InitURL      string    `json:"init_url"`
}

// PaymentStatusResult is the owner-facing poll response. Published and
// PublicURL let the client decide between "waiting for confirmation" and
// "go live".
type PaymentStatusResult struct {
	Status domain.PaymentStatus `json:"status"`
	// SessionStatus is the processor's view of a still-pending checkout
	// session; empty once the payment is settled locally.
	SessionStatus string `json:"session_status,omitempty"`
	Published     bool   `json:"published"`
	PublicURL     string `json:"public_url,omitempty"`
}

// GiftStatusResult pairs the gift payment row with its item so the guest's
// return-URL handler can refresh both in one call.
type GiftStatusResult struct {
	Payment *domain.GiftPayment  `json:"payment"`
	Item    *domain.WishListItem `json:"item"`
}

// SubmitRSVPCommand records a guest's reply, optionally against an
// existing attendee located by invitation token.
type SubmitRSVPCommand struct {
	UserID      uuid.UUID
	Token       string
	FirstName   string
	LastName    string
	Contact     string
	Status      domain.RSVPStatus
	PlusOne     bool
	PlusOneName string
}

// UpdateRSVPCommand is the owner-side correction of a guest's reply.
type UpdateRSVPCommand struct {
	AttendeeID uuid.UUID
	OwnerID    uuid.UUID
	Status     domain.RSVPStatus
}
