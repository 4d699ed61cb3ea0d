package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/billscout/backend/internal/apperror"
	"github.com/billscout/backend/pkg/datetime"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondAppError writes a JSON error response from an AppError.
func respondAppError(w http.ResponseWriter, err *apperror.AppError) {
	respondJSON(w, err.StatusCode, ErrorResponse{Error: err.Message, Field: err.Field})
}

// parseDateParam parses a YYYY-MM-DD query parameter, returning the fallback
// when the parameter is absent.
func parseDateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(datetime.DateFormat, raw)
}
