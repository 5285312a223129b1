// Package catalog provides the HTTP handlers of the admission catalog:
// the public catalog and search, the management data endpoints, entity
// CRUD and workbook import/export.
package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
)

// previewRunes bounds the plain-text description preview of a search result.
const previewRunes = 160

// CatalogDTO is the public catalog: colleges and courses joined to them.
type CatalogDTO struct {
	Colleges []entity.College        `json:"colleges"`
	Courses  []entity.EnrichedCourse `json:"courses"`
}

// DataDTO is the management view of every collection.
type DataDTO struct {
	Courses     []entity.Course  `json:"courses"`
	Colleges    []entity.College `json:"colleges"`
	Users       []entity.User    `json:"users"`
	LastUpdated *time.Time       `json:"lastUpdated,omitempty"`
}

// ResultDTO is one search result with a plain-text description preview.
type ResultDTO struct {
	entity.ResultItem
	Preview string `json:"preview,omitempty"`
}

// SearchResponse is the body of GET /api/search. Each item carries its
// payload under a key named after its type, not under a shared "data" key:
//
//	{"type":"course","course":{...}}
//	{"type":"college","college":{...}}
type SearchResponse struct {
	Items []ResultDTO       `json:"items"`
	Total int               `json:"total"`
	Hint  *search.QueryHint `json:"hint,omitempty"`
}

// MutationResponse acknowledges a write. Warning is set when the change is
// live in memory but could not be written to the durable store.
type MutationResponse struct {
	Success bool   `json:"success"`
	Item    any    `json:"item,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// ImportResponse is the body of POST /api/import.
type ImportResponse struct {
	Success bool                  `json:"success"`
	Summary catalog.ImportSummary `json:"summary"`
	Warning string                `json:"warning,omitempty"`
}

func toResultDTOs(items []entity.ResultItem) []ResultDTO {
	out := make([]ResultDTO, len(items))
	for i, it := range items {
		var desc string
		switch {
		case it.IsCourse():
			desc = it.Course.Description
		case it.College != nil:
			desc = it.College.Description
		}
		out[i] = ResultDTO{ResultItem: it, Preview: preview(desc, previewRunes)}
	}
	return out
}

// preview renders rich-text HTML as collapsed plain text of at most max
// runes, ending with "…" when cut.
func preview(html string, max int) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "…"
}
