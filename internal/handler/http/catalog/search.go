package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"direct-admission/internal/handler/http/respond"
	"direct-admission/internal/usecase/search"
)

// SearchHandler serves GET /api/search.
//
// Query parameters: q (text), location, type (all|courses|colleges,
// default colleges), sort (fees_low|fees_high|alpha_asc|alpha_desc,
// default alpha_asc; any other value keeps catalog order), assist (bool,
// consult the query assistant).
type SearchHandler struct{ Svc *search.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := search.SearchQuery{
		Text:       strings.TrimSpace(params.Get("q")),
		Location:   strings.TrimSpace(params.Get("location")),
		ResultType: search.ResultType(params.Get("type")),
		SortMode:   search.SortMode(params.Get("sort")),
	}
	switch q.ResultType {
	case "", search.ResultAll, search.ResultCourses, search.ResultColleges:
	default:
		badRequest(w, "invalid type: must be all, courses or colleges", nil)
		return
	}
	if raw := params.Get("assist"); raw != "" {
		assist, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(w, "invalid assist: must be a boolean", err)
			return
		}
		q.Assist = assist
	}

	res := h.Svc.Search(r.Context(), q)
	respond.JSON(w, http.StatusOK, SearchResponse{
		Items: toResultDTOs(res.Items),
		Total: len(res.Items),
		Hint:  res.Hint,
	})
}

// HintHandler serves POST /api/ai/search: it turns {"userQuery": "..."}
// into {"location": "...", "keyword": "..."} without running a search.
type HintHandler struct{ Parser search.QueryParser }

func (h HintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Parser == nil {
		respond.SafeErrorV2(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "query assistant is not configured", nil))
		return
	}

	var req struct {
		UserQuery string `json:"userQuery"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	if strings.TrimSpace(req.UserQuery) == "" {
		badRequest(w, "userQuery is required", nil)
		return
	}

	hint, err := h.Parser.ParseQuery(r.Context(), req.UserQuery)
	if err != nil {
		slog.WarnContext(r.Context(), "query assistant failed", slog.Any("error", err))
		respond.SafeErrorV2(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "query assistant is unavailable", err))
		return
	}
	if hint == nil {
		hint = &search.QueryHint{}
	}
	respond.JSON(w, http.StatusOK, hint)
}
