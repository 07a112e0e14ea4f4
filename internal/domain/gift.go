package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ItemPaymentStatus is the payment state carried by a wish-list item.
// A nil value on the item means no payment was ever attempted.
type ItemPaymentStatus string

const (
	ItemPaymentPending   ItemPaymentStatus = "pending"
	ItemPaymentApproved  ItemPaymentStatus = "approved"
	ItemPaymentRejected  ItemPaymentStatus = "rejected"
	ItemPaymentCancelled ItemPaymentStatus = "cancelled"
)

// GiftPayment represents a guest's purchase attempt for a wish-list item.
// It shares the PaymentStatus lifecycle with Payment but is reconciled by a
// dedicated completion path so the two reconcilers never race on one row.
type GiftPayment struct {
	ID           uuid.UUID
	GiftItemID   uuid.UUID
	Amount       int64
	Status       PaymentStatus
	PreferenceID *string
	PayerEmail   string
	PayerName    string
	// PaymentDetails captures the processor's completion payload at
	// approval time for audit.
	PaymentDetails json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGiftPayment creates a pending gift payment for an unpaid item.
func NewGiftPayment(itemID uuid.UUID, amount int64, payerEmail, payerName string) (*GiftPayment, error) {
	if amount <= 0 {
		return nil, NewInvalidAmountError(amount)
	}

	now := time.Now().UTC()
	return &GiftPayment{
		ID:         uuid.New(),
		GiftItemID: itemID,
		Amount:     amount,
		Status:     StatusPending,
		PayerEmail: payerEmail,
		PayerName:  payerName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (g *GiftPayment) IsTerminal() bool {
	return g.Status != StatusPending
}

// WishListItem is a registry entry on the invitation owner's wish list.
// Paid flips false → true exactly once, driven by a confirmed gift-payment
// completion; it never flips back.
type WishListItem struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Price         *int64
	Icon          string
	Paid          bool
	PaymentStatus *ItemPaymentStatus
}
