// File path: internal/config/config.go
// Package config gathers the process configuration from the environment.
// Values are read once at startup; the server never re-reads the environment
// while handling requests.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adityakulkarni/reportforge/internal/common"
)

const (
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7
	defaultMaxTokens   = 4000
)

// Config holds everything the binary needs beyond command-line flags.
type Config struct {
	OpenAIKey      string
	OpenAIEndpoint string
	Model          string
	Temperature    float64
	MaxTokens      int
	HTTPTimeout    time.Duration
}

// Load reads the process environment. It never fails; missing credentials
// are surfaced when the provider is constructed so the error carries the
// right type for the API layer.
func Load() Config {
	logger := common.Logger()
	cfg := Config{
		OpenAIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIEndpoint: strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")),
		Model:          defaultModel,
		Temperature:    defaultTemperature,
		MaxTokens:      defaultMaxTokens,
	}
	if model := strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")); model != "" {
		cfg.Model = model
	}
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TEMPERATURE")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 && parsed <= 2 {
			cfg.Temperature = parsed
		} else {
			logger.Warn("config: invalid OPENAI_TEMPERATURE, using default", "value", raw)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("OPENAI_MAX_TOKENS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.MaxTokens = parsed
		} else {
			logger.Warn("config: invalid OPENAI_MAX_TOKENS, using default", "value", raw)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); raw != "" {
		if timeout, err := time.ParseDuration(raw); err == nil {
			cfg.HTTPTimeout = timeout
		} else {
			logger.Warn("config: invalid OPENAI_HTTP_TIMEOUT, using default", "value", raw, "error", err)
		}
	}
	return cfg
}
