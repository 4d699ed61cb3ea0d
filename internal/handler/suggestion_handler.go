package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/service"
)

type SuggestionHandler struct {
	service SuggestionServiceInterface
}

func NewSuggestionHandler(service SuggestionServiceInterface) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// List godoc
// @Summary List pending suggestions
// @Description Pending pattern suggestions for the current user, highest confidence first
// @Tags suggestions
// @Produce json
// @Security UserID
// @Success 200 {array} model.PatternSuggestion
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suggestions [get]
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	suggestions, err := h.service.ListPending(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []model.PatternSuggestion{}
	}

	respondJSON(w, http.StatusOK, suggestions)
}

// Detect godoc
// @Summary Run pattern detection now
// @Description Sweeps the user's transaction history and creates suggestions for uncovered recurring patterns
// @Tags suggestions
// @Produce json
// @Security UserID
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suggestions/detect [post]
func (h *SuggestionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	created, err := h.service.RunDetection(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "detection failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"created": created})
}

// Confirm godoc
// @Summary Confirm a suggestion
// @Description Converts a pending suggestion into a user-confirmed recurring rule
// @Tags suggestions
// @Produce json
// @Security UserID
// @Param id path string true "Suggestion ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suggestions/{id}/confirm [post]
func (h *SuggestionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ruleID, err := h.service.Confirm(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrSuggestionNotFound):
		respondError(w, http.StatusNotFound, "suggestion not found")
	case errors.Is(err, service.ErrSuggestionNotPending):
		respondError(w, http.StatusConflict, "suggestion already resolved")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to confirm suggestion")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"ruleId": ruleID.String()})
	}
}

// Dismiss godoc
// @Summary Dismiss a suggestion
// @Description Marks the suggestion dismissed; the pattern stays suppressed until retention cleanup
// @Tags suggestions
// @Produce json
// @Security UserID
// @Param id path string true "Suggestion ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /suggestions/{id}/dismiss [post]
func (h *SuggestionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.service.Dismiss(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrSuggestionNotFound):
		respondError(w, http.StatusNotFound, "suggestion not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to dismiss suggestion")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
