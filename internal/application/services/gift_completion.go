package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

// GiftCompletionService applies verified checkout webhook events to gift
// payments. The payment approval and the item's paid flip happen in one
// repository transaction, so a delivery either lands both effects or
// neither.
type GiftCompletionService struct {
	gifts  application.GiftRepository
	logger *slog.Logger
}

func NewGiftCompletionService(gifts application.GiftRepository, logger *slog.Logger) *GiftCompletionService {
	return &GiftCompletionService{gifts: gifts, logger: logger}
}

// HandleGiftEvent reconciles one gift webhook event. Publication events
// and non-completion types are acknowledged without action. A completion
// that loses the race for the item, two guests having checked out the
// same item, is acknowledged with a warning so the processor stops
// retrying; the losing payment is settled out of band.
func (s *GiftCompletionService) HandleGiftEvent(ctx context.Context, event *application.CheckoutEvent) error {
	if event.Type != application.EventCompleted {
		s.logger.Debug("ignoring event type", "event_id", event.ID, "type", event.Type)
		return nil
	}
	if !event.IsGift() {
		s.logger.Debug("ignoring non-gift event on gift path", "event_id", event.ID)
		return nil
	}

	payment, err := s.resolveGiftPayment(ctx, event)
	if err != nil {
		return err
	}

	// Fast path on the row as read; the transactional guards below remain
	// authoritative under concurrent deliveries.
	if payment.IsTerminal() {
		if payment.Status == domain.StatusApproved {
			s.logger.Info("duplicate completion event, gift payment already approved",
				"event_id", event.ID, "gift_payment_id", payment.ID)
			return nil
		}
		return application.NewInvalidStateError(
			domain.NewInvalidTransitionError(string(payment.Status), string(domain.StatusApproved)))
	}

	completed, err := s.gifts.CompletePayment(ctx, payment.ID, payment.GiftItemID, event.Raw)
	if err != nil {
		return application.NewInternalError(err)
	}
	if !completed {
		current, err := s.gifts.FindPaymentByID(ctx, payment.ID)
		if err != nil {
			return application.NewInternalError(err)
		}
		if current.Status == domain.StatusApproved {
			s.logger.Info("duplicate completion event, gift payment already approved",
				"event_id", event.ID, "gift_payment_id", payment.ID)
			return nil
		}
		s.logger.Warn("item already paid by another payment, completion dropped",
			"event_id", event.ID, "gift_payment_id", payment.ID, "item_id", payment.GiftItemID)
		return nil
	}

	s.logger.Info("gift payment completed",
		"event_id", event.ID, "gift_payment_id", payment.ID, "item_id", payment.GiftItemID)
	return nil
}

// resolveGiftPayment locates the gift payment an event belongs to. As on
// the publication path, an explicit id resolves exactly or not at all; the
// preference id serves events whose metadata was stripped.
func (s *GiftCompletionService) resolveGiftPayment(ctx context.Context, event *application.CheckoutEvent) (*domain.GiftPayment, error) {
	if event.Metadata.GiftPaymentID != "" {
		id, err := uuid.Parse(event.Metadata.GiftPaymentID)
		if err != nil {
			return nil, application.NewInvalidInputError(err)
		}
		payment, err := s.gifts.FindPaymentByID(ctx, id)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, application.ErrGiftPaymentNotFound) {
			return nil, application.NewInternalError(err)
		}
		s.logger.Error("event names an unknown gift payment id",
			"event_id", event.ID, "gift_payment_id", event.Metadata.GiftPaymentID)
		return nil, application.NewUnresolvedEventError(application.ErrGiftPaymentNotFound)
	}

	if event.PreferenceID != "" {
		payment, err := s.gifts.FindPaymentByPreferenceID(ctx, event.PreferenceID)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, application.ErrGiftPaymentNotFound) {
			return nil, application.NewInternalError(err)
		}
	}

	s.logger.Error("gift event resolved to no payment",
		"event_id", event.ID, "preference_id", event.PreferenceID)
	return nil, application.NewUnresolvedEventError(application.ErrGiftPaymentNotFound)
}
