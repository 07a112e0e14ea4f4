package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

// ReconcileService applies verified checkout webhook events to
// publication payments. Delivery is at-least-once and unordered, so every
// path through HandleCheckoutEvent must be safe to repeat: the approval
// itself is a conditional update, and a duplicate delivery that finds the
// row already approved is acknowledged as a no-op.
type ReconcileService struct {
	payments application.PaymentRepository
	landing  application.LandingRepository
	cache    application.LandingCache
	logger   *slog.Logger
}

func NewReconcileService(
	payments application.PaymentRepository,
	landing application.LandingRepository,
	cache application.LandingCache,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		payments: payments,
		landing:  landing,
		cache:    cache,
		logger:   logger,
	}
}

// HandleCheckoutEvent reconciles one webhook event. Events of any type
// other than session completion, and gift events, are acknowledged
// without action.
func (s *ReconcileService) HandleCheckoutEvent(ctx context.Context, event *application.CheckoutEvent) error {
	if event.Type != application.EventCompleted {
		s.logger.Debug("ignoring event type", "event_id", event.ID, "type", event.Type)
		return nil
	}
	if event.IsGift() {
		s.logger.Debug("ignoring gift event on publication path", "event_id", event.ID)
		return nil
	}

	payment, err := s.resolvePayment(ctx, event)
	if err != nil {
		return err
	}

	// Fast path on the row as read; the conditional update below remains
	// the guard under concurrent deliveries.
	if err := payment.CanTransitionTo(domain.StatusApproved); err != nil {
		if payment.Status == domain.StatusApproved {
			s.logger.Info("duplicate completion event, payment already approved",
				"event_id", event.ID, "payment_id", payment.ID)
			return nil
		}
		return application.NewInvalidStateError(err)
	}

	approved, err := s.payments.Approve(ctx, payment.ID, event.Raw)
	if err != nil {
		return application.NewInternalError(err)
	}
	if !approved {
		current, err := s.payments.FindByID(ctx, payment.ID)
		if err != nil {
			return application.NewInternalError(err)
		}
		if current.Status == domain.StatusApproved {
			s.logger.Info("duplicate completion event, payment already approved",
				"event_id", event.ID, "payment_id", payment.ID)
			return nil
		}
		return application.NewInvalidStateError(
			domain.NewInvalidTransitionError(string(current.Status), string(domain.StatusApproved)))
	}

	s.logger.Info("payment approved",
		"event_id", event.ID, "payment_id", payment.ID, "user_id", payment.UserID)

	s.publishLanding(ctx, payment.UserID)
	return nil
}

// resolvePayment locates the payment row an event belongs to. An explicit
// payment id in the metadata is authoritative: it resolves exactly or not
// at all, never by guessing, so an event naming an unknown row cannot
// approve an unrelated one. The preference id covers processors that strip
// metadata; the latest-pending fallback is a last resort for events
// carrying only a user id, and is loud because it can misattribute under
// concurrency.
func (s *ReconcileService) resolvePayment(ctx context.Context, event *application.CheckoutEvent) (*domain.Payment, error) {
	if event.Metadata.PaymentID != "" {
		id, err := uuid.Parse(event.Metadata.PaymentID)
		if err != nil {
			return nil, application.NewInvalidInputError(err)
		}
		payment, err := s.payments.FindByID(ctx, id)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, application.ErrPaymentNotFound) {
			return nil, application.NewInternalError(err)
		}
		s.logger.Error("event names an unknown payment id",
			"event_id", event.ID, "payment_id", event.Metadata.PaymentID)
		return nil, application.NewUnresolvedEventError(application.ErrPaymentNotFound)
	}

	if event.PreferenceID != "" {
		payment, err := s.payments.FindByPreferenceID(ctx, event.PreferenceID)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, application.ErrPaymentNotFound) {
			return nil, application.NewInternalError(err)
		}
	}

	if event.Metadata.UserID != "" {
		userID, err := uuid.Parse(event.Metadata.UserID)
		if err != nil {
			return nil, application.NewInvalidInputError(err)
		}
		payment, err := s.payments.FindLatestPending(ctx, userID, domain.TypePublication)
		if err == nil {
			s.logger.Warn("resolved event by latest-pending fallback",
				"event_id", event.ID, "user_id", userID, "payment_id", payment.ID)
			return payment, nil
		}
		if !errors.Is(err, application.ErrPaymentNotFound) {
			return nil, application.NewInternalError(err)
		}
	}

	s.logger.Error("event resolved to no payment",
		"event_id", event.ID, "preference_id", event.PreferenceID)
	return nil, application.NewUnresolvedEventError(application.ErrPaymentNotFound)
}

// publishLanding flips the owner's page live and drops the cached copy.
// Failures here never fail the webhook: the approval is already durable
// and a later delivery or manual publish can finish the job.
func (s *ReconcileService) publishLanding(ctx context.Context, userID uuid.UUID) {
	if err := s.landing.Publish(ctx, userID); err != nil {
		if errors.Is(err, application.ErrPageNotFound) {
			s.logger.Warn("payment approved but user has no landing page", "user_id", userID)
			return
		}
		s.logger.Error("failed to publish landing page", "user_id", userID, "error", err)
		return
	}

	page, err := s.landing.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load page for cache invalidation", "user_id", userID, "error", err)
		return
	}
	if err := s.cache.Delete(ctx, page.Slug); err != nil {
		s.logger.Warn("failed to invalidate landing cache", "slug", page.Slug, "error", err)
	}

	s.logger.Info("landing page published", "user_id", userID, "slug", page.Slug)
}
