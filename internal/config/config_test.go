package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	_ = os.Unsetenv("PORT")
	_ = os.Unsetenv("ENV")
	_ = os.Unsetenv("DATABASE_URL")
	_ = os.Unsetenv("REDIS_ADDR")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.BillCacheTTL)
	assert.True(t, cfg.DetectionEnabled)
	assert.Equal(t, "0 3 * * *", cfg.DetectionSchedule)
	assert.Equal(t, 30*24*time.Hour, cfg.SuggestionRetention)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://test:5432/testdb")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("BILL_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://example.com,http://test.com")
	t.Setenv("DETECTION_ENABLED", "false")
	t.Setenv("DETECTION_SCHEDULE", "30 2 * * *")
	t.Setenv("DETECTION_TIMEOUT", "1m")
	t.Setenv("SUGGESTION_RETENTION", "168h")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "postgres://test:5432/testdb", cfg.DatabaseURL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.BillCacheTTL)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.False(t, cfg.DetectionEnabled)
	assert.Equal(t, "30 2 * * *", cfg.DetectionSchedule)
	assert.Equal(t, time.Minute, cfg.DetectionTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SuggestionRetention)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DETECTION_ENABLED", "not-a-bool")
	t.Setenv("BILL_CACHE_TTL", "soon")

	cfg := Load()

	assert.True(t, cfg.DetectionEnabled)
	assert.Equal(t, 5*time.Minute, cfg.BillCacheTTL)
}

func TestConfig_EnvHelpers(t *testing.T) {
	t.Parallel()

	dev := &Config{Env: "development"}
	prod := &Config{Env: "production"}

	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}
