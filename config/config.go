// Package config loads application settings from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the binary needs.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// OpenAI-compatible model endpoint used for the dialogue stages.
	APIKey  string
	BaseURL string
	Model   string

	// ModerationModel overrides Model for the moderation gate; a fast, cheap
	// model is enough there.
	ModerationModel string

	// TopicsFile overrides the embedded topic catalog.
	TopicsFile string

	// Moderation call budget.
	ModerationCalls  int
	ModerationPeriod time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:             envOr("SOFA_ADDR", ":7860"),
		APIKey:           os.Getenv("OPENAI_API_KEY"),
		BaseURL:          envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:            envOr("OPENAI_MODEL", "gpt-4o"),
		ModerationModel:  envOr("SOFA_MODERATION_MODEL", "gpt-4o-mini"),
		TopicsFile:       os.Getenv("SOFA_TOPICS_FILE"),
		ModerationCalls:  envIntOr("SOFA_MODERATION_CALLS", 10),
		ModerationPeriod: envDurationOr("SOFA_MODERATION_PERIOD", time.Minute),
		LogLevel:         envOr("SOFA_LOG_LEVEL", "info"),
		LogJSON:          envBoolOr("SOFA_LOG_JSON", false),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
