// Package queryhint implements search.QueryParser on top of hosted
// language models. Each provider extracts a location and a keyword from a
// free-text catalog query and is guarded by a rate limiter, a circuit
// breaker and a short retry.
package queryhint

import (
	"fmt"
	"time"

	"direct-admission/pkg/config"
)

// Provider names accepted by QUERY_HINT_PROVIDER.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config holds the settings shared by every provider.
type Config struct {
	// Model is the provider model identifier.
	Model string

	// MaxTokens bounds the model response. The answer is a tiny JSON object.
	MaxTokens int

	// Timeout bounds one parse call including retries.
	Timeout time.Duration

	// RPS and Burst throttle calls to the provider.
	RPS   float64
	Burst int

	// MaxQueryLength truncates longer queries, counted in characters.
	MaxQueryLength int
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RPS <= 0 {
		return fmt.Errorf("rps must be positive, got %v", c.RPS)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive, got %d", c.Burst)
	}
	if c.MaxQueryLength <= 0 {
		return fmt.Errorf("max query length must be positive, got %d", c.MaxQueryLength)
	}
	return nil
}

// LoadConfig reads QUERY_HINT_MODEL, QUERY_HINT_TIMEOUT, QUERY_HINT_RPS and
// QUERY_HINT_BURST on top of the defaults for defaultModel.
func LoadConfig(defaultModel string) (Config, error) {
	cfg := Config{
		Model:          config.GetEnvString("QUERY_HINT_MODEL", defaultModel),
		MaxTokens:      256,
		Timeout:        config.GetEnvDuration("QUERY_HINT_TIMEOUT", 8*time.Second),
		RPS:            float64(config.GetEnvInt("QUERY_HINT_RPS", 5)),
		Burst:          config.GetEnvInt("QUERY_HINT_BURST", 10),
		MaxQueryLength: 500,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid query hint configuration: %w", err)
	}
	return cfg, nil
}
