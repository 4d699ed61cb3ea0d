package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/billscout/backend/internal/logger"
)

// userIDHeader carries the authenticated user's ID, injected by the API
// gateway after it has verified the session. This service trusts the header
// and performs no authentication of its own.
const userIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "user_id"

// UserIdentity extracts the user ID from the X-User-ID header and stores it
// in the request context. Requests without a valid UUID are rejected.
func UserIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			respondError(w, http.StatusUnauthorized, "missing user identity")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid user identity")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		ctx = logger.WithUserID(ctx, userID.String())
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = logger.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the user ID stored by UserIdentity. It returns uuid.Nil
// when the middleware did not run, which only happens on unprotected routes.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDContextKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
