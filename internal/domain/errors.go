package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain validation errors
const (
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeItemAlreadyPaid    = "ITEM_ALREADY_PAID"
	ErrCodePendingExists      = "PENDING_PAYMENT_EXISTS"
	ErrCodeAttendeeNotFound   = "ATTENDEE_NOT_FOUND"
	ErrCodePageNotFound       = "PAGE_NOT_FOUND"
	ErrCodeUnknownTemplate    = "UNKNOWN_TEMPLATE"
	ErrCodeMissingRequired    = "MISSING_REQUIRED_FIELD"
)

func NewInvalidAmountError(amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("amount must be positive, got %d", amount),
	}
}

func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewPaymentNotFoundError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("payment %s not found", ref),
	}
}

func NewItemNotFoundError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeItemNotFound,
		Message: fmt.Sprintf("wish list item %s not found", ref),
	}
}

func NewItemAlreadyPaidError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeItemAlreadyPaid,
		Message: fmt.Sprintf("wish list item %s is already paid", ref),
	}
}

func NewPendingPaymentExistsError() *DomainError {
	return &DomainError{
		Code:    ErrCodePendingExists,
		Message: "a pending publication payment already exists for this user",
	}
}

func NewMissingRequiredError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequired,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewAttendeeNotFoundError(ref string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAttendeeNotFound,
		Message: fmt.Sprintf("attendee %s not found", ref),
	}
}

func NewPageNotFoundError(slug string) *DomainError {
	return &DomainError{
		Code:    ErrCodePageNotFound,
		Message: fmt.Sprintf("landing page %s not found", slug),
	}
}

func NewUnknownTemplateError(id string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownTemplate,
		Message: fmt.Sprintf("unknown template id %q", id),
	}
}

// IsErrorCode reports whether err is a DomainError carrying the given code.
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
