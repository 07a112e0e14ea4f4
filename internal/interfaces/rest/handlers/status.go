package handlers

import (
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/middleware"
	"github.com/google/uuid"
)

// HandlePaymentStatus answers the owner's post-checkout poll.
func (h *Handlers) HandlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, application.NewUnauthorizedError())
		return
	}

	preferenceID := r.URL.Query().Get("preference_id")
	if preferenceID == "" {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "preference_id query parameter is required",
		})
		return
	}

	result, err := h.status.PaymentStatus(r.Context(), userID, preferenceID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// HandleGiftStatus answers the guest's post-checkout poll.
func (h *Handlers) HandleGiftStatus(w http.ResponseWriter, r *http.Request) {
	preferenceID := r.URL.Query().Get("preference_id")
	if preferenceID == "" {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "preference_id query parameter is required",
		})
		return
	}

	result, err := h.status.GiftStatus(r.Context(), preferenceID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// HandleListWishList returns a user's wish-list items with paid state,
// the read the guest's return page refreshes against.
func (h *Handlers) HandleListWishList(w http.ResponseWriter, r *http.Request) {
	rawUserID := r.URL.Query().Get("user_id")
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "user_id must be a valid uuid",
		})
		return
	}

	items, err := h.status.ListWishList(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}
