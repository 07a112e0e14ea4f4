package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/checkout"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/middleware"
	"github.com/MatiasOrellano/invitly-backend/internal/templates"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test"

// Mock services

type mockCheckoutService struct {
	publicationFn func(ctx context.Context, cmd services.PublicationCheckoutCommand) (*services.CheckoutSession, error)
	giftFn        func(ctx context.Context, cmd services.GiftCheckoutCommand) (*services.CheckoutSession, error)
}

func (m *mockCheckoutService) CreatePublicationCheckout(ctx context.Context, cmd services.PublicationCheckoutCommand) (*services.CheckoutSession, error) {
	return m.publicationFn(ctx, cmd)
}

func (m *mockCheckoutService) CreateGiftCheckout(ctx context.Context, cmd services.GiftCheckoutCommand) (*services.CheckoutSession, error) {
	return m.giftFn(ctx, cmd)
}

type mockReconcileService struct {
	handleFn func(ctx context.Context, event *application.CheckoutEvent) error
}

func (m *mockReconcileService) HandleCheckoutEvent(ctx context.Context, event *application.CheckoutEvent) error {
	return m.handleFn(ctx, event)
}

type mockGiftCompletionService struct {
	handleFn func(ctx context.Context, event *application.CheckoutEvent) error
}

func (m *mockGiftCompletionService) HandleGiftEvent(ctx context.Context, event *application.CheckoutEvent) error {
	return m.handleFn(ctx, event)
}

type mockStatusService struct {
	paymentFn  func(ctx context.Context, userID uuid.UUID, preferenceID string) (*services.PaymentStatusResult, error)
	giftFn     func(ctx context.Context, preferenceID string) (*services.GiftStatusResult, error)
	wishListFn func(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error)
}

func (m *mockStatusService) PaymentStatus(ctx context.Context, userID uuid.UUID, preferenceID string) (*services.PaymentStatusResult, error) {
	return m.paymentFn(ctx, userID, preferenceID)
}

func (m *mockStatusService) GiftStatus(ctx context.Context, preferenceID string) (*services.GiftStatusResult, error) {
	return m.giftFn(ctx, preferenceID)
}

func (m *mockStatusService) ListWishList(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error) {
	return m.wishListFn(ctx, userID)
}

type mockRSVPService struct {
	getFn    func(ctx context.Context, token string) (*domain.Attendee, error)
	submitFn func(ctx context.Context, cmd services.SubmitRSVPCommand) (*domain.Attendee, error)
	updateFn func(ctx context.Context, cmd services.UpdateRSVPCommand) (*domain.Attendee, error)
}

func (m *mockRSVPService) GetAttendeeByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	return m.getFn(ctx, token)
}

func (m *mockRSVPService) SubmitRSVP(ctx context.Context, cmd services.SubmitRSVPCommand) (*domain.Attendee, error) {
	return m.submitFn(ctx, cmd)
}

func (m *mockRSVPService) UpdateRSVPStatus(ctx context.Context, cmd services.UpdateRSVPCommand) (*domain.Attendee, error) {
	return m.updateFn(ctx, cmd)
}

type mockLandingService struct {
	getFn func(ctx context.Context, slug string) (*domain.LandingPage, error)
}

func (m *mockLandingService) GetBySlug(ctx context.Context, slug string) (*domain.LandingPage, error) {
	return m.getFn(ctx, slug)
}

func (m *mockLandingService) ListTemplates() []templates.Descriptor {
	return templates.All()
}

func newTestHandlers(t *testing.T, opts ...func(*Handlers)) *Handlers {
	t.Helper()
	h := NewHandlers(
		&mockCheckoutService{},
		&mockReconcileService{},
		&mockGiftCompletionService{},
		&mockStatusService{},
		&mockRSVPService{},
		&mockLandingService{},
		testWebhookSecret,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// Webhook handler

func signedWebhookRequest(t *testing.T, path string, payload []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(checkout.SignatureHeader, checkout.Sign(testWebhookSecret, payload))
	return req
}

func webhookPayload(t *testing.T, metadata map[string]string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt-1",
		"type": application.EventCompleted,
		"data": map[string]interface{}{
			"preference_id": "pref-1",
			"status":        "approved",
			"metadata":      metadata,
		},
	})
	require.NoError(t, err)
	return payload
}

func TestHandleCheckoutWebhook_ValidSignature(t *testing.T) {
	var handled *application.CheckoutEvent
	h := newTestHandlers(t, func(h *Handlers) {
		h.reconcile = &mockReconcileService{
			handleFn: func(ctx context.Context, event *application.CheckoutEvent) error {
				handled = event
				return nil
			},
		}
	})

	payload := webhookPayload(t, map[string]string{"payment_id": uuid.NewString()})
	rr := httptest.NewRecorder()
	h.HandleCheckoutWebhook(rr, signedWebhookRequest(t, "/api/webhooks/checkout", payload))

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, handled)
	assert.Equal(t, "evt-1", handled.ID)
	assert.Equal(t, "pref-1", handled.PreferenceID)
}

func TestHandleCheckoutWebhook_InvalidSignature(t *testing.T) {
	serviceCalled := false
	h := newTestHandlers(t, func(h *Handlers) {
		h.reconcile = &mockReconcileService{
			handleFn: func(ctx context.Context, event *application.CheckoutEvent) error {
				serviceCalled = true
				return nil
			},
		}
	})

	payload := webhookPayload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/checkout", bytes.NewReader(payload))
	req.Header.Set(checkout.SignatureHeader, checkout.Sign("wrong-secret", payload))

	rr := httptest.NewRecorder()
	h.HandleCheckoutWebhook(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Equal(t, application.ErrCodeInvalidSignature, resp.Error.Code)
	assert.False(t, serviceCalled, "an unverified body must never reach the reconciler")
}

func TestHandleCheckoutWebhook_MissingSignature(t *testing.T) {
	h := newTestHandlers(t)

	payload := webhookPayload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/checkout", bytes.NewReader(payload))

	rr := httptest.NewRecorder()
	h.HandleCheckoutWebhook(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCheckoutWebhook_MalformedPayload(t *testing.T) {
	h := newTestHandlers(t)

	payload := []byte(`{"type":"checkout.session.completed"}`) // no event id
	rr := httptest.NewRecorder()
	h.HandleCheckoutWebhook(rr, signedWebhookRequest(t, "/api/webhooks/checkout", payload))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGiftWebhook_ValidSignature(t *testing.T) {
	var handled *application.CheckoutEvent
	h := newTestHandlers(t, func(h *Handlers) {
		h.giftCompletion = &mockGiftCompletionService{
			handleFn: func(ctx context.Context, event *application.CheckoutEvent) error {
				handled = event
				return nil
			},
		}
	})

	payload := webhookPayload(t, map[string]string{
		"gift_payment_id": uuid.NewString(),
		"item_id":         uuid.NewString(),
	})
	rr := httptest.NewRecorder()
	h.HandleGiftWebhook(rr, signedWebhookRequest(t, "/api/webhooks/gift", payload))

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, handled)
	assert.True(t, handled.IsGift())
}

// Checkout handlers

func TestHandleCreatePublicationCheckout_Success(t *testing.T) {
	userID := uuid.New()
	h := newTestHandlers(t, func(h *Handlers) {
		h.checkout = &mockCheckoutService{
			publicationFn: func(ctx context.Context, cmd services.PublicationCheckoutCommand) (*services.CheckoutSession, error) {
				assert.Equal(t, userID, cmd.UserID)
				assert.Equal(t, int64(15000), cmd.Amount)
				return &services.CheckoutSession{
					PaymentID:    uuid.New(),
					PreferenceID: "pref-1",
					InitURL:      "https://checkout.example/pref-1",
				}, nil
			},
		}
	})

	body, _ := json.Marshal(PublicationCheckoutRequest{Amount: 15000, Description: "Publication"})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", bytes.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	rr := httptest.NewRecorder()
	h.HandleCreatePublicationCheckout(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
}

func TestHandleCreatePublicationCheckout_NoAuthContext(t *testing.T) {
	h := newTestHandlers(t)

	body, _ := json.Marshal(PublicationCheckoutRequest{Amount: 15000, Description: "Publication"})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/checkout", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	h.HandleCreatePublicationCheckout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleCreateGiftCheckout_AlreadyPaidMapsToConflict(t *testing.T) {
	itemID := uuid.New()
	h := newTestHandlers(t, func(h *Handlers) {
		h.checkout = &mockCheckoutService{
			giftFn: func(ctx context.Context, cmd services.GiftCheckoutCommand) (*services.CheckoutSession, error) {
				return nil, application.NewInvalidStateError(domain.NewItemAlreadyPaidError(itemID.String()))
			},
		}
	})

	body, _ := json.Marshal(GiftCheckoutRequest{ItemID: itemID.String(), Amount: 5000})
	req := httptest.NewRequest(http.MethodPost, "/api/gifts/checkout", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	h.HandleCreateGiftCheckout(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Equal(t, domain.ErrCodeItemAlreadyPaid, resp.Error.Code)
}

func TestHandleCreateGiftCheckout_InvalidItemID(t *testing.T) {
	h := newTestHandlers(t)

	body := []byte(`{"item_id":"not-a-uuid","amount":5000}`)
	req := httptest.NewRequest(http.MethodPost, "/api/gifts/checkout", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	h.HandleCreateGiftCheckout(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// Status handlers

func TestHandlePaymentStatus_Success(t *testing.T) {
	userID := uuid.New()
	h := newTestHandlers(t, func(h *Handlers) {
		h.status = &mockStatusService{
			paymentFn: func(ctx context.Context, u uuid.UUID, preferenceID string) (*services.PaymentStatusResult, error) {
				assert.Equal(t, userID, u)
				assert.Equal(t, "pref-1", preferenceID)
				return &services.PaymentStatusResult{
					Status:    domain.StatusApproved,
					Published: true,
					PublicURL: "https://invites.example/ana-y-juan",
				}, nil
			},
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status?preference_id=pref-1", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	rr := httptest.NewRecorder()
	h.HandlePaymentStatus(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlePaymentStatus_MissingPreferenceID(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/status", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))

	rr := httptest.NewRecorder()
	h.HandlePaymentStatus(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGiftStatus_NotFound(t *testing.T) {
	h := newTestHandlers(t, func(h *Handlers) {
		h.status = &mockStatusService{
			giftFn: func(ctx context.Context, preferenceID string) (*services.GiftStatusResult, error) {
				return nil, application.NewNotFoundError(domain.NewPaymentNotFoundError(preferenceID))
			},
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/gifts/status?preference_id=pref-x", nil)
	rr := httptest.NewRecorder()
	h.HandleGiftStatus(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Landing and RSVP routes go through the mux to exercise path values.

func testServer(h *Handlers) *httptest.Server {
	mux := http.NewServeMux()
	passthrough := func(next http.Handler) http.Handler { return next }
	h.RegisterRoutes(mux, passthrough, passthrough)
	return httptest.NewServer(mux)
}

func TestHandleGetLanding_Success(t *testing.T) {
	h := newTestHandlers(t, func(h *Handlers) {
		h.landing = &mockLandingService{
			getFn: func(ctx context.Context, slug string) (*domain.LandingPage, error) {
				assert.Equal(t, "ana-y-juan", slug)
				return &domain.LandingPage{Slug: slug, TemplateID: "classic-ivory", Published: true}, nil
			},
		}
	})
	srv := testServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/landing/ana-y-juan")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleGetAttendee_Success(t *testing.T) {
	attendee := domain.NewAttendee(uuid.New(), "Ana", "García", "ana@example.com")
	h := newTestHandlers(t, func(h *Handlers) {
		h.rsvp = &mockRSVPService{
			getFn: func(ctx context.Context, token string) (*domain.Attendee, error) {
				assert.Equal(t, attendee.InvitationToken, token)
				return attendee, nil
			},
		}
	})
	srv := testServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/attendees/" + attendee.InvitationToken)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleSubmitRSVP_Success(t *testing.T) {
	h := newTestHandlers(t, func(h *Handlers) {
		h.rsvp = &mockRSVPService{
			submitFn: func(ctx context.Context, cmd services.SubmitRSVPCommand) (*domain.Attendee, error) {
				assert.Equal(t, domain.RSVPAttending, cmd.Status)
				a := domain.NewAttendee(uuid.New(), cmd.FirstName, cmd.LastName, cmd.Contact)
				a.RSVPStatus = cmd.Status
				return a, nil
			},
		}
	})

	body, _ := json.Marshal(SubmitRSVPRequest{
		UserID:    uuid.NewString(),
		FirstName: "Pedro",
		Status:    "attending",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", bytes.NewReader(body))

	rr := httptest.NewRecorder()
	h.HandleSubmitRSVP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestHandleListTemplates(t *testing.T) {
	h := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rr := httptest.NewRecorder()
	h.HandleListTemplates(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
}
