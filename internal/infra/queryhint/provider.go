package queryhint

import (
	"fmt"
	"log/slog"
	"strings"

	"direct-admission/internal/usecase/search"
	"direct-admission/pkg/config"
)

// FromEnv builds the parser named by QUERY_HINT_PROVIDER. A provider whose
// API key is missing falls back to NoOp with a warning so search keeps
// working without hints.
func FromEnv() (search.QueryParser, error) {
	provider := strings.ToLower(config.GetEnvString("QUERY_HINT_PROVIDER", ProviderNone))

	switch provider {
	case ProviderNone, "":
		return NewNoOp(), nil

	case ProviderClaude:
		apiKey := config.GetEnvString("ANTHROPIC_API_KEY", "")
		if apiKey == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, query hints disabled")
			return NewNoOp(), nil
		}
		cfg, err := LoadConfig(DefaultClaudeModel)
		if err != nil {
			return nil, err
		}
		return NewClaude(apiKey, cfg), nil

	case ProviderOpenAI:
		apiKey := config.GetEnvString("OPENAI_API_KEY", "")
		if apiKey == "" {
			slog.Warn("OPENAI_API_KEY not set, query hints disabled")
			return NewNoOp(), nil
		}
		cfg, err := LoadConfig(DefaultOpenAIModel)
		if err != nil {
			return nil, err
		}
		return NewOpenAI(apiKey, config.GetEnvString("OPENAI_BASE_URL", ""), cfg), nil

	default:
		return nil, fmt.Errorf("invalid QUERY_HINT_PROVIDER %q: must be claude, openai or none", provider)
	}
}
