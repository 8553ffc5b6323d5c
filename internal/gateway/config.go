package gateway

import (
	"os"
	"strconv"
)

// Config holds the completion-backend settings.
type Config struct {
	APIKey     string
	BaseURL    string // override for tests and proxies; empty uses the SDK default
	Model      string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns the gateway defaults. No credential is assumed.
func DefaultConfig() Config {
	return Config{
		Model:      "gpt-4o-mini",
		TimeoutMs:  30000,
		MaxRetries: 1,
	}
}

// LoadConfig reads gateway configuration from environment variables,
// falling back to defaults for any unset value.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("APAISE_OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("APAISE_OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("APAISE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("APAISE_GATEWAY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("APAISE_GATEWAY_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
