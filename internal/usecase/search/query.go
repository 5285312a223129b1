package search

import (
	"context"
	"strings"
)

// ResultType selects which collections a search returns.
type ResultType string

const (
	ResultAll      ResultType = "all"
	ResultCourses  ResultType = "courses"
	ResultColleges ResultType = "colleges"
)

// SortMode selects the ordering applied by Rank.
type SortMode string

const (
	SortFeesLow   SortMode = "fees_low"
	SortFeesHigh  SortMode = "fees_high"
	SortAlphaAsc  SortMode = "alpha_asc"
	SortAlphaDesc SortMode = "alpha_desc"
)

// Defaults applied by Service.Search when a query leaves them empty.
const (
	DefaultResultType = ResultColleges
	DefaultSortMode   = SortAlphaAsc
)

// QueryHint is the structured interpretation of a free-text query.
// An empty field means the parser found nothing for it.
type QueryHint struct {
	Location string `json:"location"`
	Keyword  string `json:"keyword"`
}

// QueryParser turns free text into a QueryHint. Implementations may call
// remote services and may fail; callers treat a failure as "no hint".
type QueryParser interface {
	ParseQuery(ctx context.Context, text string) (*QueryHint, error)
}

// SearchQuery is the full input of a search.
type SearchQuery struct {
	Text       string
	Location   string
	ResultType ResultType
	SortMode   SortMode
	Hint       *QueryHint
	// Assist asks the service to consult the QueryParser before searching.
	Assist bool
}

// EffectiveText is the hint keyword when present, otherwise the raw text.
func (q SearchQuery) EffectiveText() string {
	if q.Hint != nil && strings.TrimSpace(q.Hint.Keyword) != "" {
		return q.Hint.Keyword
	}
	return q.Text
}

// EffectiveLocation is the hint location when present, otherwise the raw
// location filter.
func (q SearchQuery) EffectiveLocation() string {
	if q.Hint != nil && strings.TrimSpace(q.Hint.Location) != "" {
		return q.Hint.Location
	}
	return q.Location
}

// includesCourses is true for every result type except "colleges".
func (t ResultType) includesCourses() bool { return t != ResultColleges }

// includesColleges is true for every result type except "courses".
func (t ResultType) includesColleges() bool { return t != ResultCourses }
