package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/observability/metrics"
	"direct-admission/internal/observability/tracing"
	"direct-admission/internal/repository"
)

// SnapshotSource provides the current catalog contents.
type SnapshotSource interface {
	Snapshot() repository.Snapshot
}

// Result is the outcome of a search.
type Result struct {
	Items []entity.ResultItem
	// Hint is the parser interpretation that was applied, nil when none.
	Hint *QueryHint
}

// Service runs searches against the current catalog snapshot.
type Service struct {
	Catalog SnapshotSource
	// Parser is optional. When nil, Assist queries behave as plain ones.
	Parser QueryParser
}

// Search enriches the snapshot, resolves the query hint, filters and ranks.
// Parser failures are logged and the search continues without a hint.
func (s *Service) Search(ctx context.Context, q SearchQuery) Result {
	start := time.Now()
	if q.ResultType == "" {
		q.ResultType = DefaultResultType
	}
	if q.SortMode == "" {
		q.SortMode = DefaultSortMode
	}

	ctx, span := tracing.StartSpan(ctx, "search",
		attribute.String("search.result_type", string(q.ResultType)),
		attribute.String("search.sort", string(q.SortMode)),
		attribute.Bool("search.assist", q.Assist),
	)
	defer span.End()

	if q.Hint == nil && q.Assist {
		q.Hint = s.parse(ctx, q.Text)
	}

	snap := s.Catalog.Snapshot()
	var enriched []entity.EnrichedCourse
	if q.ResultType.includesCourses() {
		enriched = Enrich(snap.Courses, snap.Colleges)
	}
	items := Rank(AssembleResults(enriched, snap.Colleges, q), q.SortMode)

	span.SetAttributes(attribute.Int("search.results", len(items)))
	metrics.RecordSearch(string(q.ResultType), string(q.SortMode), len(items), time.Since(start))
	return Result{Items: items, Hint: q.Hint}
}

// Enriched returns every course of the snapshot joined to its college.
func (s *Service) Enriched() []entity.EnrichedCourse {
	snap := s.Catalog.Snapshot()
	return Enrich(snap.Courses, snap.Colleges)
}

func (s *Service) parse(ctx context.Context, text string) *QueryHint {
	if s.Parser == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	hint, err := s.Parser.ParseQuery(ctx, text)
	if err != nil {
		slog.WarnContext(ctx, "query parser failed, searching without hint",
			slog.Int("query_length", len(text)),
			slog.Any("error", err))
		return nil
	}
	if hint == nil || (hint.Keyword == "" && hint.Location == "") {
		return nil
	}
	return hint
}
