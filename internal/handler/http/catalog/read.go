package catalog

import (
	"net/http"

	"direct-admission/internal/handler/http/respond"
	catUC "direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
)

// CatalogHandler serves GET /api/catalog.
type CatalogHandler struct{ Svc *search.Service }

func (h CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.Svc.Catalog.Snapshot()
	respond.JSON(w, http.StatusOK, CatalogDTO{
		Colleges: snap.Colleges,
		Courses:  search.Enrich(snap.Courses, snap.Colleges),
	})
}

// DataHandler serves GET /api/data, every collection including users.
type DataHandler struct{ Svc *catUC.Service }

func (h DataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.Svc.Snapshot()
	dto := DataDTO{Courses: snap.Courses, Colleges: snap.Colleges, Users: snap.Users}
	if t := h.Svc.LastReload(); !t.IsZero() {
		dto.LastUpdated = &t
	}
	respond.JSON(w, http.StatusOK, dto)
}

// RefreshHandler serves POST /api/refresh by reloading from the durable store.
type RefreshHandler struct{ Svc *catUC.Service }

func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Reload(r.Context()); err != nil {
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": h.Svc.LastReload(),
	})
}
