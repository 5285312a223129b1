package queryhint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"direct-admission/internal/resilience/circuitbreaker"
	"direct-admission/internal/resilience/retry"
	"direct-admission/internal/usecase/search"
)

// DefaultOpenAIModel is used when QUERY_HINT_MODEL is unset.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI parses queries with the Chat Completions API in JSON mode.
type OpenAI struct {
	client *openai.Client
	guard  guard
}

// NewOpenAI creates an OpenAI query parser. baseURL may be empty to use
// the public endpoint.
func NewOpenAI(apiKey, baseURL string, cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	slog.Info("initialized openai query parser",
		slog.String("model", cfg.Model),
		slog.Float64("rps", cfg.RPS))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		guard:  newGuard(ProviderOpenAI, cfg, circuitbreaker.QueryHintConfig(ProviderOpenAI)),
	}
}

// ParseQuery implements search.QueryParser.
func (o *OpenAI) ParseQuery(ctx context.Context, text string) (*search.QueryHint, error) {
	return o.guard.parse(ctx, text, o.chat)
}

func (o *OpenAI) chat(ctx context.Context, query string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.guard.cfg.Model,
		MaxTokens: o.guard.cfg.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", withStatus(err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// withStatus tags API failures with their HTTP status for the retry policy.
func withStatus(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &retry.StatusError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &retry.StatusError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
