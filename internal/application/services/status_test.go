package services_test

import (
	"context"
	"testing"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/mocks"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_ApprovedAndPublished(t *testing.T) {
	payment := pendingPayment()
	payment.Status = domain.StatusApproved

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}
	landing := &mocks.LandingRepository{
		FindByUserIDFn: func(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error) {
			return &domain.LandingPage{UserID: userID, Slug: "ana-y-juan", Published: true}, nil
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, landing, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	result, err := svc.PaymentStatus(context.Background(), payment.UserID, "pref-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, result.Status)
	assert.True(t, result.Published)
	assert.Equal(t, "https://invites.example/ana-y-juan", result.PublicURL)
}

func TestPaymentStatus_PendingWithoutPage(t *testing.T) {
	payment := pendingPayment()

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, &mocks.LandingRepository{}, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	result, err := svc.PaymentStatus(context.Background(), payment.UserID, "pref-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.False(t, result.Published)
	assert.Empty(t, result.PublicURL)
}

func TestPaymentStatus_PendingCarriesSessionStatus(t *testing.T) {
	payment := pendingPayment()

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}
	client := &mocks.CheckoutClient{
		GetPreferenceFn: func(ctx context.Context, preferenceID string) (*application.Preference, error) {
			require.Equal(t, "pref-1", preferenceID)
			return &application.Preference{ID: preferenceID, Status: "opened"}, nil
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, &mocks.LandingRepository{}, client, checkoutCfg(), discardLogger())

	result, err := svc.PaymentStatus(context.Background(), payment.UserID, "pref-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Equal(t, "opened", result.SessionStatus)
}

func TestPaymentStatus_SessionLookupFailureIsSoft(t *testing.T) {
	payment := pendingPayment()

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}
	client := &mocks.CheckoutClient{
		GetPreferenceFn: func(ctx context.Context, preferenceID string) (*application.Preference, error) {
			return nil, assert.AnError
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, &mocks.LandingRepository{}, client, checkoutCfg(), discardLogger())

	result, err := svc.PaymentStatus(context.Background(), payment.UserID, "pref-1")

	require.NoError(t, err, "the local row answers the poll even when the processor is down")
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Empty(t, result.SessionStatus)
}

func TestPaymentStatus_SettledPaymentSkipsSessionLookup(t *testing.T) {
	payment := pendingPayment()
	payment.Status = domain.StatusApproved

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}
	client := &mocks.CheckoutClient{
		GetPreferenceFn: func(ctx context.Context, preferenceID string) (*application.Preference, error) {
			t.Fatal("a settled payment must not be re-checked against the processor")
			return nil, nil
		},
	}
	landing := &mocks.LandingRepository{
		FindByUserIDFn: func(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error) {
			return &domain.LandingPage{UserID: userID, Slug: "s", Published: true}, nil
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, landing, client, checkoutCfg(), discardLogger())

	result, err := svc.PaymentStatus(context.Background(), payment.UserID, "pref-1")

	require.NoError(t, err)
	assert.Empty(t, result.SessionStatus)
}

func TestPaymentStatus_ForeignPaymentReadsAsNotFound(t *testing.T) {
	payment := pendingPayment()

	payments := &mocks.PaymentRepository{
		FindByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.Payment, error) {
			return payment, nil
		},
	}

	svc := services.NewStatusService(payments, &mocks.GiftRepository{}, &mocks.LandingRepository{}, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	_, err := svc.PaymentStatus(context.Background(), uuid.New(), "pref-1")

	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code, "a foreign payment must be indistinguishable from a missing one")
}

func TestPaymentStatus_UnknownPreference(t *testing.T) {
	svc := services.NewStatusService(&mocks.PaymentRepository{}, &mocks.GiftRepository{}, &mocks.LandingRepository{}, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	_, err := svc.PaymentStatus(context.Background(), uuid.New(), "pref-unknown")

	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
}

func TestGiftStatus_ReturnsPaymentAndItem(t *testing.T) {
	payment := pendingGiftPayment()
	payment.Status = domain.StatusApproved

	gifts := &mocks.GiftRepository{
		FindPaymentByPreferenceIDFn: func(ctx context.Context, preferenceID string) (*domain.GiftPayment, error) {
			return payment, nil
		},
		FindItemFn: func(ctx context.Context, id uuid.UUID) (*domain.WishListItem, error) {
			require.Equal(t, payment.GiftItemID, id)
			return &domain.WishListItem{ID: id, Name: "Stand mixer", Paid: true}, nil
		},
	}

	svc := services.NewStatusService(&mocks.PaymentRepository{}, gifts, &mocks.LandingRepository{}, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	result, err := svc.GiftStatus(context.Background(), "pref-g1")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, result.Payment.Status)
	assert.True(t, result.Item.Paid)
}

func TestListWishList(t *testing.T) {
	userID := uuid.New()
	gifts := &mocks.GiftRepository{
		ListItemsByUserFn: func(ctx context.Context, u uuid.UUID) ([]*domain.WishListItem, error) {
			require.Equal(t, userID, u)
			return []*domain.WishListItem{{ID: uuid.New(), Name: "Toaster"}}, nil
		},
	}

	svc := services.NewStatusService(&mocks.PaymentRepository{}, gifts, &mocks.LandingRepository{}, &mocks.CheckoutClient{}, checkoutCfg(), discardLogger())

	items, err := svc.ListWishList(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Toaster", items[0].Name)
}
