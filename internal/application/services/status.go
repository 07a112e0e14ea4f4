package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/config"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
)

// StatusService answers the clients' post-checkout polls. It reads only
// the local rows: the webhook is the source of truth for approval, so a
// poll never talks to the processor.
type StatusService struct {
	payments application.PaymentRepository
	gifts    application.GiftRepository
	landing  application.LandingRepository
	client   application.CheckoutClient
	cfg      config.CheckoutConfig
	logger   *slog.Logger
}

func NewStatusService(
	payments application.PaymentRepository,
	gifts application.GiftRepository,
	landing application.LandingRepository,
	client application.CheckoutClient,
	cfg config.CheckoutConfig,
	logger *slog.Logger,
) *StatusService {
	return &StatusService{
		payments: payments,
		gifts:    gifts,
		landing:  landing,
		client:   client,
		cfg:      cfg,
		logger:   logger,
	}
}

// PaymentStatus returns the publication payment state for the owner's
// poll. A preference id belonging to another user reads as not found, the
// same answer an unknown id gets. Approval is decided by the webhook
// alone; while the row is still pending the processor's session state is
// attached as read-only context so the client can tell an open session
// from an abandoned one.
func (s *StatusService) PaymentStatus(ctx context.Context, userID uuid.UUID, preferenceID string) (*PaymentStatusResult, error) {
	payment, err := s.payments.FindByPreferenceID(ctx, preferenceID)
	if err != nil {
		if errors.Is(err, application.ErrPaymentNotFound) {
			return nil, application.NewNotFoundError(domain.NewPaymentNotFoundError(preferenceID))
		}
		return nil, application.NewInternalError(err)
	}
	if payment.UserID != userID {
		return nil, application.NewNotFoundError(domain.NewPaymentNotFoundError(preferenceID))
	}

	result := &PaymentStatusResult{Status: payment.Status}

	if payment.Status == domain.StatusPending {
		pref, err := s.client.GetPreference(ctx, preferenceID)
		if err != nil {
			s.logger.Warn("preference status lookup failed",
				"preference_id", preferenceID, "error", err)
		} else {
			result.SessionStatus = pref.Status
		}
	}

	page, err := s.landing.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, application.ErrPageNotFound) {
			return nil, application.NewInternalError(err)
		}
		return result, nil
	}
	result.Published = page.Published
	if page.Published {
		result.PublicURL = fmt.Sprintf("%s/%s", s.cfg.PublicBaseURL, page.Slug)
	}
	return result, nil
}

// GiftStatus returns the gift payment together with its item, so the
// guest's return page refreshes both in one call. Guests are anonymous;
// possession of the preference id is the access check.
func (s *StatusService) GiftStatus(ctx context.Context, preferenceID string) (*GiftStatusResult, error) {
	payment, err := s.gifts.FindPaymentByPreferenceID(ctx, preferenceID)
	if err != nil {
		if errors.Is(err, application.ErrGiftPaymentNotFound) {
			return nil, application.NewNotFoundError(domain.NewPaymentNotFoundError(preferenceID))
		}
		return nil, application.NewInternalError(err)
	}

	item, err := s.gifts.FindItem(ctx, payment.GiftItemID)
	if err != nil {
		if errors.Is(err, application.ErrItemNotFound) {
			return nil, application.NewNotFoundError(domain.NewItemNotFoundError(payment.GiftItemID.String()))
		}
		return nil, application.NewInternalError(err)
	}

	return &GiftStatusResult{Payment: payment, Item: item}, nil
}

// ListWishList returns a user's wish-list items with their current paid
// state, the read guests refresh after returning from checkout.
func (s *StatusService) ListWishList(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error) {
	items, err := s.gifts.ListItemsByUser(ctx, userID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return items, nil
}
