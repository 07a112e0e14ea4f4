package postgres

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentModel mirrors the payments table.
type PaymentModel struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Amount         int64
	Description    string
	Type           string
	Status         string
	PreferenceID   *string
	PaymentDetails json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GiftPaymentModel mirrors the gift_payments table.
type GiftPaymentModel struct {
	ID             uuid.UUID
	GiftItemID     uuid.UUID
	Amount         int64
	Status         string
	PreferenceID   *string
	PayerEmail     string
	PayerName      string
	PaymentDetails json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WishListItemModel mirrors the wish_list_items table.
type WishListItemModel struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Price         *int64
	Icon          string
	Paid          bool
	PaymentStatus *string
}

// AttendeeModel mirrors the attendees table.
type AttendeeModel struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FirstName       string
	LastName        string
	Contact         string
	RSVPStatus      string
	PlusOne         bool
	PlusOneName     string
	InvitationToken string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LandingPageModel mirrors the landing_pages table.
type LandingPageModel struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TemplateID string
	Slug       string
	Published  bool
	Content    json.RawMessage
	UpdatedAt  time.Time
}
