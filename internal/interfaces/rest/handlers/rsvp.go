package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/middleware"
	"github.com/google/uuid"
)

type SubmitRSVPRequest struct {
	UserID      string `json:"user_id" validate:"omitempty,uuid"`
	Token       string `json:"token"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Contact     string `json:"contact"`
	Status      string `json:"status" validate:"required"`
	PlusOne     bool   `json:"plus_one"`
	PlusOneName string `json:"plus_one_name"`
}

type UpdateRSVPRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleGetAttendee resolves an invitation token to the guest record, so
// the RSVP form opens prefilled.
func (h *Handlers) HandleGetAttendee(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	attendee, err := h.rsvp.GetAttendeeByToken(r.Context(), token)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, attendee)
}

// HandleSubmitRSVP records a guest reply, by token or as a new guest.
func (h *Handlers) HandleSubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRSVPRequest
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

	cmd := services.SubmitRSVPCommand{
		Token:       req.Token,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Contact:     req.Contact,
		Status:      domain.RSVPStatus(req.Status),
		PlusOne:     req.PlusOne,
		PlusOneName: req.PlusOneName,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			respondWithJSON(w, http.StatusBadRequest, &APIError{
				Code:    "VALIDATION_ERROR",
				Message: "user_id must be a valid uuid",
			})
			return
		}
		cmd.UserID = userID
	}

	attendee, err := h.rsvp.SubmitRSVP(r.Context(), cmd)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, attendee)
}

// HandleUpdateRSVP is the owner-side correction of a guest's reply.
func (h *Handlers) HandleUpdateRSVP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, application.NewUnauthorizedError())
		return
	}

	attendeeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "attendee id must be a valid uuid",
		})
		return
	}

	var req UpdateRSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "invalid request body",
		})
		return
	}

	attendee, err := h.rsvp.UpdateRSVPStatus(r.Context(), services.UpdateRSVPCommand{
		AttendeeID: attendeeID,
		OwnerID:    ownerID,
		Status:     domain.RSVPStatus(req.Status),
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, attendee)
}
