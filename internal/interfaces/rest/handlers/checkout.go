package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/middleware"
	"github.com/google/uuid"
)

type PublicationCheckoutRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	PayerEmail  string `json:"payer_email" validate:"omitempty,email"`
	PayerName   string `json:"payer_name"`
}

type GiftCheckoutRequest struct {
	ItemID     string `json:"item_id" validate:"required,uuid"`
	Amount     int64  `json:"amount" validate:"omitempty,gt=0"`
	PayerEmail string `json:"payer_email" validate:"omitempty,email"`
	PayerName  string `json:"payer_name"`
}

// HandleCreatePublicationCheckout starts the publication-fee checkout for
// the authenticated owner and returns the hosted checkout handoff.
func (h *Handlers) HandleCreatePublicationCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, application.NewUnauthorizedError())
		return
	}

	var req PublicationCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "invalid request body",
		})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	session, err := h.checkout.CreatePublicationCheckout(r.Context(), services.PublicationCheckoutCommand{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		PayerEmail:  req.PayerEmail,
		PayerName:   req.PayerName,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}

// HandleCreateGiftCheckout starts a gift checkout for an anonymous guest.
func (h *Handlers) HandleCreateGiftCheckout(w http.ResponseWriter, r *http.Request) {
	var req GiftCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "invalid request body",
		})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "item_id must be a valid uuid",
		})
		return
	}

	session, err := h.checkout.CreateGiftCheckout(r.Context(), services.GiftCheckoutCommand{
		ItemID:     itemID,
		Amount:     req.Amount,
		PayerEmail: req.PayerEmail,
		PayerName:  req.PayerName,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}
