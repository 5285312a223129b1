package queryhint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"direct-admission/internal/resilience/circuitbreaker"
	"direct-admission/internal/resilience/retry"
	"direct-admission/internal/usecase/search"
)

// DefaultClaudeModel is used when QUERY_HINT_MODEL is unset.
const DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude parses queries with Anthropic's Messages API.
type Claude struct {
	client   anthropic.Client
	guard    guard
	complete completeFunc
}

// NewClaude creates a Claude query parser. Extra client options are
// appended after the API key.
func NewClaude(apiKey string, cfg Config, opts ...option.RequestOption) *Claude {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		// retries are handled by the guard
		option.WithMaxRetries(0),
	}, opts...)

	c := &Claude{
		client: anthropic.NewClient(opts...),
		guard:  newGuard(ProviderClaude, cfg, circuitbreaker.QueryHintConfig(ProviderClaude)),
	}
	c.complete = c.messages

	slog.Info("initialized claude query parser",
		slog.String("model", cfg.Model),
		slog.Float64("rps", cfg.RPS))
	return c
}

// ParseQuery implements search.QueryParser.
func (c *Claude) ParseQuery(ctx context.Context, text string) (*search.QueryHint, error) {
	return c.guard.parse(ctx, text, c.complete)
}

func (c *Claude) messages(ctx context.Context, query string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.guard.cfg.Model),
		MaxTokens: int64(c.guard.cfg.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			err = &retry.StatusError{StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	return block.Text, nil
}
