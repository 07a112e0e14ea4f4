// Package domain defines the domain models for the invitation backend.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the current state of a payment attempt in its lifecycle
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusApproved PaymentStatus = "approved"
	StatusFailed   PaymentStatus = "failed"
	StatusExpired  PaymentStatus = "expired"
)

// PaymentType discriminates what a payment row pays for
type PaymentType string

const (
	TypePublication PaymentType = "publication"
)

// Payment represents a publication-fee payment attempt by an invitation owner.
// PreferenceID correlates the row with the hosted checkout session at the
// external processor; it is nil until the session has been created.
type Payment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Amount         int64
	Description    string
	Type           PaymentType
	Status         PaymentStatus
	PreferenceID   *string
	PaymentDetails json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment creates a pending publication payment. The row is persisted
// before the external checkout session exists so a reconciler always has a
// row to find.
func NewPayment(userID uuid.UUID, amount int64, description string) (*Payment, error) {
	if amount <= 0 {
		return nil, NewInvalidAmountError(amount)
	}

	now := time.Now().UTC()
	return &Payment{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Type:        TypePublication,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo validates whether a payment can move from its current
// status to the target status. Approval is monotonic: approved never
// reverts, and terminal states allow no further transitions.
//
// Valid transitions are:
//   - pending → approved, failed, expired
func (p *Payment) CanTransitionTo(target PaymentStatus) error {
	if p.Status == StatusPending {
		switch target {
		case StatusApproved, StatusFailed, StatusExpired:
			return nil
		}
	}
	return NewInvalidTransitionError(string(p.Status), string(target))
}

func (p *Payment) IsTerminal() bool {
	return p.Status != StatusPending
}
