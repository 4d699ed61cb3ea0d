// Package apperror carries an HTTP status and a client-safe message
// alongside the underlying error, so handlers can map service failures
// to responses without inspecting error strings.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrValidation   = errors.New("validation error")
)

// AppError is an error with an HTTP status attached. Field is set only
// for validation failures and names the offending request field.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Field      string
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newError(sentinel error, status int, message string) *AppError {
	return &AppError{Err: sentinel, Message: message, StatusCode: status}
}

// NotFound reports a missing resource by name, e.g. NotFound("budget").
func NotFound(resource string) *AppError {
	return newError(ErrNotFound, http.StatusNotFound, resource+" not found")
}

func BadRequest(message string) *AppError {
	return newError(ErrBadRequest, http.StatusBadRequest, message)
}

// ValidationError rejects a single request field with a reason.
func ValidationError(field, message string) *AppError {
	e := newError(ErrValidation, http.StatusBadRequest, message)
	e.Field = field
	return e
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return newError(ErrUnauthorized, http.StatusUnauthorized, message)
}

func Conflict(message string) *AppError {
	return newError(ErrConflict, http.StatusConflict, message)
}

// Internal hides the cause behind a generic message; the original error
// stays reachable through Unwrap for logging.
func Internal(err error) *AppError {
	return newError(err, http.StatusInternalServerError, "an internal error occurred")
}

// GetStatusCode resolves err to an HTTP status. Unknown errors map to 500.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetMessage returns the client-safe message for err.
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
