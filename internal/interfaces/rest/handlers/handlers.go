// Package handlers wires the HTTP surface to the application services.
// Handlers depend on narrow service interfaces so tests can stand in
// fakes without a database or processor.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/MatiasOrellano/invitly-backend/internal/templates"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

type CheckoutService interface {
	CreatePublicationCheckout(ctx context.Context, cmd services.PublicationCheckoutCommand) (*services.CheckoutSession, error)
	CreateGiftCheckout(ctx context.Context, cmd services.GiftCheckoutCommand) (*services.CheckoutSession, error)
}

type ReconcileService interface {
	HandleCheckoutEvent(ctx context.Context, event *application.CheckoutEvent) error
}

type GiftCompletionService interface {
	HandleGiftEvent(ctx context.Context, event *application.CheckoutEvent) error
}

type StatusService interface {
	PaymentStatus(ctx context.Context, userID uuid.UUID, preferenceID string) (*services.PaymentStatusResult, error)
	GiftStatus(ctx context.Context, preferenceID string) (*services.GiftStatusResult, error)
	ListWishList(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error)
}

type RSVPService interface {
	GetAttendeeByToken(ctx context.Context, token string) (*domain.Attendee, error)
	SubmitRSVP(ctx context.Context, cmd services.SubmitRSVPCommand) (*domain.Attendee, error)
	UpdateRSVPStatus(ctx context.Context, cmd services.UpdateRSVPCommand) (*domain.Attendee, error)
}

type LandingService interface {
	GetBySlug(ctx context.Context, slug string) (*domain.LandingPage, error)
	ListTemplates() []templates.Descriptor
}

type Handlers struct {
	checkout       CheckoutService
	reconcile      ReconcileService
	giftCompletion GiftCompletionService
	status         StatusService
	rsvp           RSVPService
	landing        LandingService
	webhookSecret  string
	validate       *validator.Validate
	logger         *slog.Logger
}

func NewHandlers(
	checkout CheckoutService,
	reconcile ReconcileService,
	giftCompletion GiftCompletionService,
	status StatusService,
	rsvp RSVPService,
	landing LandingService,
	webhookSecret string,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		checkout:       checkout,
		reconcile:      reconcile,
		giftCompletion: giftCompletion,
		status:         status,
		rsvp:           rsvp,
		landing:        landing,
		webhookSecret:  webhookSecret,
		validate:       validator.New(),
		logger:         logger,
	}
}

// RegisterRoutes mounts every route. Owner routes go through requireAuth;
// the guest-facing gift checkout goes through rateLimit instead, guests
// having no credentials to throttle on.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux, requireAuth, rateLimit func(http.Handler) http.Handler) {
	mux.Handle("POST /api/payments/checkout", requireAuth(http.HandlerFunc(h.HandleCreatePublicationCheckout)))
	mux.Handle("GET /api/payments/status", requireAuth(http.HandlerFunc(h.HandlePaymentStatus)))

	mux.Handle("POST /api/gifts/checkout", rateLimit(http.HandlerFunc(h.HandleCreateGiftCheckout)))
	mux.HandleFunc("GET /api/gifts/status", h.HandleGiftStatus)
	mux.HandleFunc("GET /api/gifts/items", h.HandleListWishList)

	mux.HandleFunc("POST /api/webhooks/checkout", h.HandleCheckoutWebhook)
	mux.HandleFunc("POST /api/webhooks/gift", h.HandleGiftWebhook)

	mux.HandleFunc("GET /api/landing/{slug}", h.HandleGetLanding)
	mux.HandleFunc("GET /api/templates", h.HandleListTemplates)

	mux.HandleFunc("GET /api/attendees/{token}", h.HandleGetAttendee)
	mux.Handle("POST /api/rsvp", rateLimit(http.HandlerFunc(h.HandleSubmitRSVP)))
	mux.Handle("PATCH /api/rsvp/{id}", requireAuth(http.HandlerFunc(h.HandleUpdateRSVP)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
