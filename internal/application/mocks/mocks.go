// Package mocks provides function-override test doubles for the
// application ports. Each method delegates to an optional Fn field and
// falls back to a zero-value behavior, so tests only stub what they
// assert on.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

type PaymentRepository struct {
	CreateFn              func(ctx context.Context, payment *domain.Payment) error
	FindByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByPreferenceIDFn  func(ctx context.Context, preferenceID string) (*domain.Payment, error)
	FindLatestPendingFn   func(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (*domain.Payment, error)
	HasPendingFn          func(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (bool, error)
	AttachPreferenceFn    func(ctx context.Context, id uuid.UUID, preferenceID string) error
	ApproveFn             func(ctx context.Context, id uuid.UUID, details json.RawMessage) (bool, error)
	ExpirePendingBeforeFn func(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

func (m *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, payment)
	}
	return nil
}

func (m *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, application.ErrPaymentNotFound
}

func (m *PaymentRepository) FindByPreferenceID(ctx context.Context, preferenceID string) (*domain.Payment, error) {
	if m.FindByPreferenceIDFn != nil {
		return m.FindByPreferenceIDFn(ctx, preferenceID)
	}
	return nil, application.ErrPaymentNotFound
}

func (m *PaymentRepository) FindLatestPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (*domain.Payment, error) {
	if m.FindLatestPendingFn != nil {
		return m.FindLatestPendingFn(ctx, userID, t)
	}
	return nil, application.ErrPaymentNotFound
}

func (m *PaymentRepository) HasPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (bool, error) {
	if m.HasPendingFn != nil {
		return m.HasPendingFn(ctx, userID, t)
	}
	return false, nil
}

func (m *PaymentRepository) AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error {
	if m.AttachPreferenceFn != nil {
		return m.AttachPreferenceFn(ctx, id, preferenceID)
	}
	return nil
}

func (m *PaymentRepository) Approve(ctx context.Context, id uuid.UUID, details json.RawMessage) (bool, error) {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, id, details)
	}
	return false, nil
}

func (m *PaymentRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if m.ExpirePendingBeforeFn != nil {
		return m.ExpirePendingBeforeFn(ctx, cutoff, limit)
	}
	return 0, nil
}

type GiftRepository struct {
	CreatePaymentFn             func(ctx context.Context, payment *domain.GiftPayment) error
	FindPaymentByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.GiftPayment, error)
	FindPaymentByPreferenceIDFn func(ctx context.Context, preferenceID string) (*domain.GiftPayment, error)
	AttachPreferenceFn          func(ctx context.Context, id uuid.UUID, preferenceID string) error
	FindItemFn                  func(ctx context.Context, id uuid.UUID) (*domain.WishListItem, error)
	ListItemsByUserFn           func(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error)
	CompletePaymentFn           func(ctx context.Context, paymentID, itemID uuid.UUID, details json.RawMessage) (bool, error)
	ExpirePendingBeforeFn       func(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

func (m *GiftRepository) CreatePayment(ctx context.Context, payment *domain.GiftPayment) error {
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, payment)
	}
	return nil
}

func (m *GiftRepository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*domain.GiftPayment, error) {
	if m.FindPaymentByIDFn != nil {
		return m.FindPaymentByIDFn(ctx, id)
	}
	return nil, application.ErrGiftPaymentNotFound
}

func (m *GiftRepository) FindPaymentByPreferenceID(ctx context.Context, preferenceID string) (*domain.GiftPayment, error) {
	if m.FindPaymentByPreferenceIDFn != nil {
		return m.FindPaymentByPreferenceIDFn(ctx, preferenceID)
	}
	return nil, application.ErrGiftPaymentNotFound
}

func (m *GiftRepository) AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error {
	if m.AttachPreferenceFn != nil {
		return m.AttachPreferenceFn(ctx, id, preferenceID)
	}
	return nil
}

func (m *GiftRepository) FindItem(ctx context.Context, id uuid.UUID) (*domain.WishListItem, error) {
	if m.FindItemFn != nil {
		return m.FindItemFn(ctx, id)
	}
	return nil, application.ErrItemNotFound
}

func (m *GiftRepository) ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error) {
	if m.ListItemsByUserFn != nil {
		return m.ListItemsByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *GiftRepository) CompletePayment(ctx context.Context, paymentID, itemID uuid.UUID, details json.RawMessage) (bool, error) {
	if m.CompletePaymentFn != nil {
		return m.CompletePaymentFn(ctx, paymentID, itemID, details)
	}
	return false, nil
}

func (m *GiftRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if m.ExpirePendingBeforeFn != nil {
		return m.ExpirePendingBeforeFn(ctx, cutoff, limit)
	}
	return 0, nil
}

type AttendeeRepository struct {
	CreateFn      func(ctx context.Context, attendee *domain.Attendee) error
	FindByTokenFn func(ctx context.Context, token string) (*domain.Attendee, error)
	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Attendee, error)
	UpdateRSVPFn  func(ctx context.Context, attendee *domain.Attendee) error
}

func (m *AttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, attendee)
	}
	return nil
}

func (m *AttendeeRepository) FindByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	if m.FindByTokenFn != nil {
		return m.FindByTokenFn(ctx, token)
	}
	return nil, application.ErrAttendeeNotFound
}

func (m *AttendeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, application.ErrAttendeeNotFound
}

func (m *AttendeeRepository) UpdateRSVP(ctx context.Context, attendee *domain.Attendee) error {
	if m.UpdateRSVPFn != nil {
		return m.UpdateRSVPFn(ctx, attendee)
	}
	return nil
}

type LandingRepository struct {
	FindBySlugFn   func(ctx context.Context, slug string) (*domain.LandingPage, error)
	FindByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error)
	PublishFn      func(ctx context.Context, userID uuid.UUID) error
}

func (m *LandingRepository) FindBySlug(ctx context.Context, slug string) (*domain.LandingPage, error) {
	if m.FindBySlugFn != nil {
		return m.FindBySlugFn(ctx, slug)
	}
	return nil, application.ErrPageNotFound
}

func (m *LandingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error) {
	if m.FindByUserIDFn != nil {
		return m.FindByUserIDFn(ctx, userID)
	}
	return nil, application.ErrPageNotFound
}

func (m *LandingRepository) Publish(ctx context.Context, userID uuid.UUID) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, userID)
	}
	return nil
}

type LandingCache struct {
	GetFn    func(ctx context.Context, slug string) (*domain.LandingPage, error)
	SetFn    func(ctx context.Context, page *domain.LandingPage) error
	DeleteFn func(ctx context.Context, slug string) error
}

func (m *LandingCache) Get(ctx context.Context, slug string) (*domain.LandingPage, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, slug)
	}
	return nil, nil
}

func (m *LandingCache) Set(ctx context.Context, page *domain.LandingPage) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, page)
	}
	return nil
}

func (m *LandingCache) Delete(ctx context.Context, slug string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, slug)
	}
	return nil
}

type CheckoutClient struct {
	CreatePreferenceFn func(ctx context.Context, req application.PreferenceRequest) (*application.Preference, error)
	GetPreferenceFn    func(ctx context.Context, preferenceID string) (*application.Preference, error)
}

func (m *CheckoutClient) CreatePreference(ctx context.Context, req application.PreferenceRequest) (*application.Preference, error) {
	if m.CreatePreferenceFn != nil {
		return m.CreatePreferenceFn(ctx, req)
	}
	return &application.Preference{ID: "pref-" + uuid.NewString(), InitURL: "https://checkout.example/init"}, nil
}

func (m *CheckoutClient) GetPreference(ctx context.Context, preferenceID string) (*application.Preference, error) {
	if m.GetPreferenceFn != nil {
		return m.GetPreferenceFn(ctx, preferenceID)
	}
	return &application.Preference{ID: preferenceID}, nil
}

type Mailer struct {
	SendFn func(ctx context.Context, to, subject, body string) error
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}
	return nil
}
