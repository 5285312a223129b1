package queryhint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"direct-admission/internal/observability/metrics"
	"direct-admission/internal/resilience/circuitbreaker"
	"direct-admission/internal/resilience/retry"
	"direct-admission/internal/usecase/search"
)

// ErrUnparsableResponse is returned when the model answer holds no JSON object.
var ErrUnparsableResponse = errors.New("model response is not a JSON object")

const systemPrompt = `You turn a student's search for colleges and courses in India into filters.
Reply with one JSON object and nothing else: {"location": "...", "keyword": "..."}.
"location" is a city or state named in the query, "keyword" is the course, degree or college the student wants.
Use an empty string for anything the query does not mention.`

// completeFunc sends one prompt to a model and returns its raw text answer.
type completeFunc func(ctx context.Context, query string) (string, error)

// guard wraps a provider call with throttling, circuit breaking, retry and
// metrics. It is shared by the provider implementations.
type guard struct {
	provider string
	cfg      Config
	limiter  *rate.Limiter
	breaker  *circuitbreaker.CircuitBreaker
	retry    retry.Config
}

func newGuard(provider string, cfg Config, cb circuitbreaker.Config) guard {
	return guard{
		provider: provider,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker:  circuitbreaker.New(cb),
		retry:    retry.QueryHintConfig(),
	}
}

func (g *guard) parse(ctx context.Context, query string, complete completeFunc) (*search.QueryHint, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	query = truncate(strings.TrimSpace(query), g.cfg.MaxQueryLength)
	if query == "" {
		return nil, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		metrics.RecordQueryHint(g.provider, "throttled", time.Since(start))
		return nil, fmt.Errorf("%s query hint throttled: %w", g.provider, err)
	}

	var hint *search.QueryHint
	err := retry.WithBackoff(ctx, g.retry, func() error {
		res, err := circuitbreaker.Run(g.breaker, func() (*search.QueryHint, error) {
			raw, err := complete(ctx, query)
			if err != nil {
				return nil, err
			}
			return decodeHint(raw)
		})
		if err != nil {
			if circuitbreaker.IsOpenError(err) {
				slog.Warn("query hint circuit breaker open, request rejected",
					slog.String("service", g.provider),
					slog.String("state", g.breaker.State().String()))
				return fmt.Errorf("%s api unavailable: circuit breaker open", g.provider)
			}
			return err
		}
		hint = res
		return nil
	})
	if err != nil {
		metrics.RecordQueryHint(g.provider, "failure", time.Since(start))
		return nil, fmt.Errorf("%s parse query: %w", g.provider, err)
	}

	status := "success"
	if hint.Keyword == "" && hint.Location == "" {
		status = "empty"
	}
	metrics.RecordQueryHint(g.provider, status, time.Since(start))
	slog.DebugContext(ctx, "query hint parsed",
		slog.String("provider", g.provider),
		slog.String("location", hint.Location),
		slog.String("keyword", hint.Keyword),
		slog.Duration("duration", time.Since(start)))
	return hint, nil
}

// decodeHint extracts the first JSON object of a model answer. Models
// sometimes wrap it in prose or a code fence.
func decodeHint(raw string) (*search.QueryHint, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, ErrUnparsableResponse
	}
	var hint search.QueryHint
	if err := json.Unmarshal([]byte(raw[start:end+1]), &hint); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	hint.Location = strings.TrimSpace(hint.Location)
	hint.Keyword = strings.TrimSpace(hint.Keyword)
	return &hint, nil
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return string([]rune(s)[:maxRunes])
}
