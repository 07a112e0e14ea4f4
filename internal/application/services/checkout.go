package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/config"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
)

// CheckoutService creates hosted checkout sessions at the external
// processor. The local payment row is always persisted before the
// processor call, so a webhook arriving at any point after that call has
// a row to reconcile against.
type CheckoutService struct {
	payments application.PaymentRepository
	gifts    application.GiftRepository
	client   application.CheckoutClient
	cfg      config.CheckoutConfig
	logger   *slog.Logger
}

func NewCheckoutService(
	payments application.PaymentRepository,
	gifts application.GiftRepository,
	client application.CheckoutClient,
	cfg config.CheckoutConfig,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		payments: payments,
		gifts:    gifts,
		client:   client,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreatePublicationCheckout starts the publication-fee flow for an
// invitation owner. At most one pending publication payment may exist per
// user at a time; a second attempt while one is in flight is rejected.
func (s *CheckoutService) CreatePublicationCheckout(ctx context.Context, cmd PublicationCheckoutCommand) (*CheckoutSession, error) {
	payment, err := domain.NewPayment(cmd.UserID, cmd.Amount, cmd.Description)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	hasPending, err := s.payments.HasPending(ctx, cmd.UserID, domain.TypePublication)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if hasPending {
		return nil, application.NewInvalidStateError(domain.NewPendingPaymentExistsError())
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		// The partial unique index closes the race the HasPending check
		// leaves open between two concurrent initiations.
		if errors.Is(err, application.ErrDuplicatePending) {
			return nil, application.NewInvalidStateError(domain.NewPendingPaymentExistsError())
		}
		return nil, application.NewInternalError(err)
	}

	pref, err := s.client.CreatePreference(ctx, application.PreferenceRequest{
		Amount:      payment.Amount,
		Description: payment.Description,
		PayerEmail:  cmd.PayerEmail,
		PayerName:   cmd.PayerName,
		SuccessURL:  fmt.Sprintf("%s/return?payment=success&type=publication", s.cfg.ReturnBaseURL),
		CancelURL:   fmt.Sprintf("%s/return?payment=cancelled&type=publication", s.cfg.ReturnBaseURL),
		Metadata: map[string]string{
			"payment_id": payment.ID.String(),
			"user_id":    payment.UserID.String(),
			"type":       string(domain.TypePublication),
		},
	})
	if err != nil {
		s.logger.Error("preference creation failed, payment left pending for expiration sweep",
			"payment_id", payment.ID, "error", err)
		return nil, application.NewProcessorError(err)
	}

	if err := s.payments.AttachPreference(ctx, payment.ID, pref.ID); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("publication checkout created",
		"payment_id", payment.ID, "user_id", payment.UserID, "preference_id", pref.ID)

	return &CheckoutSession{
		PaymentID:    payment.ID,
		PreferenceID: pref.ID,
		InitURL:      pref.InitURL,
	}, nil
}

// CreateGiftCheckout starts the gift flow for a guest. An already-paid
// item is rejected before any row is written. The item's listed price
// wins over the caller-supplied amount when both are present.
func (s *CheckoutService) CreateGiftCheckout(ctx context.Context, cmd GiftCheckoutCommand) (*CheckoutSession, error) {
	item, err := s.gifts.FindItem(ctx, cmd.ItemID)
	if err != nil {
		if errors.Is(err, application.ErrItemNotFound) {
			return nil, application.NewNotFoundError(domain.NewItemNotFoundError(cmd.ItemID.String()))
		}
		return nil, application.NewInternalError(err)
	}
	if item.Paid {
		return nil, application.NewInvalidStateError(domain.NewItemAlreadyPaidError(item.ID.String()))
	}

	amount := cmd.Amount
	if item.Price != nil {
		amount = *item.Price
	}

	payment, err := domain.NewGiftPayment(item.ID, amount, cmd.PayerEmail, cmd.PayerName)
	if err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	if err := s.gifts.CreatePayment(ctx, payment); err != nil {
		return nil, application.NewInternalError(err)
	}

	pref, err := s.client.CreatePreference(ctx, application.PreferenceRequest{
		Amount:      payment.Amount,
		Description: fmt.Sprintf("Gift: %s", item.Name),
		PayerEmail:  cmd.PayerEmail,
		PayerName:   cmd.PayerName,
		SuccessURL:  fmt.Sprintf("%s/return?payment=success&type=gift&item_id=%s", s.cfg.ReturnBaseURL, item.ID),
		CancelURL:   fmt.Sprintf("%s/return?payment=cancelled&type=gift&item_id=%s", s.cfg.ReturnBaseURL, item.ID),
		Metadata: map[string]string{
			"gift_payment_id": payment.ID.String(),
			"item_id":         item.ID.String(),
		},
	})
	if err != nil {
		s.logger.Error("preference creation failed, gift payment left pending for expiration sweep",
			"gift_payment_id", payment.ID, "error", err)
		return nil, application.NewProcessorError(err)
	}

	if err := s.gifts.AttachPreference(ctx, payment.ID, pref.ID); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("gift checkout created",
		"gift_payment_id", payment.ID, "item_id", item.ID, "preference_id", pref.ID)

	return &CheckoutSession{
		PaymentID:    payment.ID,
		PreferenceID: pref.ID,
		InitURL:      pref.InitURL,
	}, nil
}
