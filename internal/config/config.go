package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Redis bill cache. Empty address disables caching.
	RedisAddr    string
	BillCacheTTL time.Duration

	// CORS
	AllowedOrigins []string

	// Pattern detection sweep
	DetectionEnabled  bool
	DetectionSchedule string        // Cron expression (e.g., "0 3 * * *" for 3 AM daily)
	DetectionTimeout  time.Duration // Timeout per complete sweep
	DetectionLookback time.Duration // Only users with transactions this recent are swept

	// Dismissed suggestions older than this are purged and become
	// eligible for re-suggestion.
	SuggestionRetention time.Duration
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/billscout?sslmode=disable"),

		// Redis
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		BillCacheTTL: getDurationEnv("BILL_CACHE_TTL", 5*time.Minute),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Detection
		DetectionEnabled:  getBoolEnv("DETECTION_ENABLED", true),
		DetectionSchedule: getEnv("DETECTION_SCHEDULE", "0 3 * * *"), // Default: daily at 3 AM
		DetectionTimeout:  getDurationEnv("DETECTION_TIMEOUT", 10*time.Minute),
		DetectionLookback: getDurationEnv("DETECTION_LOOKBACK", 90*24*time.Hour),

		SuggestionRetention: getDurationEnv("SUGGESTION_RETENTION", 30*24*time.Hour),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
