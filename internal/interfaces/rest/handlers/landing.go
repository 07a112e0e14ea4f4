package handlers

import (
	"net/http"
)

// HandleGetLanding serves a published invitation page by slug.
func (h *Handlers) HandleGetLanding(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	page, err := h.landing.GetBySlug(r.Context(), slug)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// HandleListTemplates returns the template catalog for the editor's picker.
func (h *Handlers) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.landing.ListTemplates())
}
