package handlers

import (
	"io"
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/checkout"
)

// maxWebhookBody caps how much of a webhook body is read before
// signature verification.
const maxWebhookBody = 1 << 20

// HandleCheckoutWebhook receives publication payment events from the
// processor. The signature is verified over the raw body before anything
// is parsed; an unsigned or mis-signed request is rejected without
// touching any row.
func (h *Handlers) HandleCheckoutWebhook(w http.ResponseWriter, r *http.Request) {
	event, ok := h.verifiedEvent(w, r)
	if !ok {
		return
	}

	if err := h.reconcile.HandleCheckoutEvent(r.Context(), event); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"received": event.ID})
}

// HandleGiftWebhook receives gift payment events from the processor.
func (h *Handlers) HandleGiftWebhook(w http.ResponseWriter, r *http.Request) {
	event, ok := h.verifiedEvent(w, r)
	if !ok {
		return
	}

	if err := h.giftCompletion.HandleGiftEvent(r.Context(), event); err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"received": event.ID})
}

func (h *Handlers) verifiedEvent(w http.ResponseWriter, r *http.Request) (*application.CheckoutEvent, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondWithError(w, application.NewInternalError(err))
		return nil, false
	}

	signature := r.Header.Get(checkout.SignatureHeader)
	if !checkout.VerifySignature(h.webhookSecret, body, signature) {
		h.logger.Warn("webhook signature verification failed",
			"path", r.URL.Path, "remote_addr", r.RemoteAddr)
		respondWithError(w, application.NewInvalidSignatureError())
		return nil, false
	}

	event, err := checkout.ParseWebhookEvent(body)
	if err != nil {
		respondWithError(w, application.NewInvalidInputError(err))
		return nil, false
	}
	return event, true
}
