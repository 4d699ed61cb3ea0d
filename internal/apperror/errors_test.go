package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	plain := BadRequest("invalid date range")
	assert.Equal(t, "invalid date range", plain.Error())

	withField := ValidationError("amount", "must be greater than 0")
	assert.Equal(t, "amount: must be greater than 0", withField.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("scan failed")
	appErr := Internal(inner)

	assert.ErrorIs(t, appErr, inner)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantIs     error
	}{
		{"not found", NotFound("rule"), http.StatusNotFound, ErrNotFound},
		{"bad request", BadRequest("oops"), http.StatusBadRequest, ErrBadRequest},
		{"validation", ValidationError("type", "unknown type"), http.StatusBadRequest, ErrValidation},
		{"unauthorized default message", Unauthorized(""), http.StatusUnauthorized, ErrUnauthorized},
		{"conflict", Conflict("already pending"), http.StatusConflict, ErrConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			if tt.wantIs != nil {
				assert.ErrorIs(t, tt.err, tt.wantIs)
			}
		})
	}
}

func TestNotFound_MessageIncludesResource(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "suggestion not found", NotFound("suggestion").Message)
}

func TestGetStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("bill"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("handling request: %w", Conflict("dup")), http.StatusConflict},
		{"sentinel", ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("check: %w", ErrValidation), http.StatusBadRequest},
		{"unknown error", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetStatusCode(tt.err))
		})
	}
}

func TestGetMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "an internal error occurred", GetMessage(Internal(errors.New("raw db error"))))
	assert.Equal(t, "plain failure", GetMessage(errors.New("plain failure")))
}
