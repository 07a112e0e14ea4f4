package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

// Not-found sentinels shared by every repository implementation, so
// services can branch with errors.Is regardless of the backing store.
var (
	// ErrDuplicatePending is returned by PaymentRepository.Create when the
	// single-pending-per-owner index rejects a second in-flight row.
	ErrDuplicatePending = errors.New("pending payment already exists")

	ErrPaymentNotFound     = errors.New("payment not found")
	ErrGiftPaymentNotFound = errors.New("gift payment not found")
	ErrItemNotFound        = errors.New("wish list item not found")
	ErrAttendeeNotFound    = errors.New("attendee not found")
	ErrPageNotFound        = errors.New("landing page not found")
)

// PaymentRepository is the port for publication-payment persistence.
// Approve is a compare-and-swap conditioned on status = pending so that
// concurrent duplicate webhook deliveries converge without coordination.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByPreferenceID(ctx context.Context, preferenceID string) (*domain.Payment, error)
	// FindLatestPending returns the most recent pending payment of the
	// given type for a user, or domain not-found.
	FindLatestPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (*domain.Payment, error)
	HasPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (bool, error)
	AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error
	// Approve transitions pending → approved and stores the processor
	// payload in one update. It returns false when no pending row matched,
	// which callers must disambiguate by re-reading the row.
	Approve(ctx context.Context, id uuid.UUID, details json.RawMessage) (bool, error)
	// ExpirePendingBefore sweeps pending rows created before the cutoff to
	// expired, at most limit rows, returning how many were swept.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// GiftRepository is the port for gift-payment and wish-list persistence.
type GiftRepository interface {
	CreatePayment(ctx context.Context, payment *domain.GiftPayment) error
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*domain.GiftPayment, error)
	FindPaymentByPreferenceID(ctx context.Context, preferenceID string) (*domain.GiftPayment, error)
	AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error
	FindItem(ctx context.Context, id uuid.UUID) (*domain.WishListItem, error)
	ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error)
	// CompletePayment transitions, in one transaction, the gift payment
	// pending → approved and its item paid false → true with
	// payment_status approved. It returns false without mutating anything
	// when either guard fails (duplicate delivery or item already paid).
	CompletePayment(ctx context.Context, paymentID, itemID uuid.UUID, details json.RawMessage) (bool, error)
	ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// AttendeeRepository is the port for guest/RSVP persistence.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	FindByToken(ctx context.Context, token string) (*domain.Attendee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error)
	UpdateRSVP(ctx context.Context, attendee *domain.Attendee) error
}

// LandingRepository is the port for landing-page persistence.
type LandingRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.LandingPage, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error)
	Publish(ctx context.Context, userID uuid.UUID) error
}

// LandingCache is a read-through cache for published landing pages.
// Get returns (nil, nil) on a miss; cache failures are soft.
type LandingCache interface {
	Get(ctx context.Context, slug string) (*domain.LandingPage, error)
	Set(ctx context.Context, page *domain.LandingPage) error
	Delete(ctx context.Context, slug string) error
}

// PreferenceRequest asks the external processor for a hosted checkout
// session. Metadata round-trips internal identifiers through the processor
// so the webhook can resolve the exact row it belongs to.
type PreferenceRequest struct {
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	PayerEmail  string            `json:"payer_email,omitempty"`
	PayerName   string            `json:"payer_name,omitempty"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata"`
}

// Preference is the processor's hosted checkout session.
type Preference struct {
	ID      string `json:"id"`
	InitURL string `json:"init_url"`
	Status  string `json:"status"`
}

// CheckoutClient is the port for the external hosted-checkout processor.
type CheckoutClient interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPreference(ctx context.Context, preferenceID string) (*Preference, error)
}

// EventCompleted is the only webhook event type acted upon; every other
// type is acknowledged and ignored.
const EventCompleted = "checkout.session.completed"

// EventMetadata carries the internal identifiers embedded at preference
// creation. Gift events carry gift ids without a user id, which is how the
// publication reconciler tells the two apart.
type EventMetadata struct {
	PaymentID     string `json:"payment_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	GiftPaymentID string `json:"gift_payment_id,omitempty"`
	ItemID        string `json:"item_id,omitempty"`
}

// CheckoutEvent is a verified, parsed webhook event from the processor.
// Raw keeps the original body for the audit column.
type CheckoutEvent struct {
	ID           string
	Type         string
	PreferenceID string
	Status       string
	Metadata     EventMetadata
	Raw          json.RawMessage
}

// IsGift reports whether the event belongs to the gift completion path.
func (e *CheckoutEvent) IsGift() bool {
	return e.Metadata.GiftPaymentID != "" || e.Metadata.ItemID != ""
}

// Mailer is the port for outbound notification email. Delivery is a
// send-and-log side effect: callers log failures and carry on.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
