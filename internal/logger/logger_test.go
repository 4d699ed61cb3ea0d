package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger())
}

func TestContextAttributes(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithUserID(ctx, "3f0e8a1c-9d5b-4f7e-8a2d-1b6c4e9f0a3d")

	assert.Equal(t, "req-123", ctx.Value(requestIDKey))
	assert.Equal(t, "3f0e8a1c-9d5b-4f7e-8a2d-1b6c4e9f0a3d", ctx.Value(userIDKey))
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func() context.Context
	}{
		{name: "empty context", setupCtx: context.Background},
		{
			name: "with request ID",
			setupCtx: func() context.Context {
				return WithRequestID(context.Background(), "req-123")
			},
		},
		{
			name: "with user ID",
			setupCtx: func() context.Context {
				return WithUserID(context.Background(), "user-456")
			},
		},
		{
			name: "with both",
			setupCtx: func() context.Context {
				return WithUserID(WithRequestID(context.Background(), "req-123"), "user-456")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NotNil(t, FromContext(tt.setupCtx()))
		})
	}
}

func TestFromContextIgnoresEmptyValues(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "")
	assert.Equal(t, defaultLogger, FromContext(ctx))
}
