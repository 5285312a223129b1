package catalog

import (
	"encoding/json"
	"net/http"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/pathutil"
	"direct-admission/internal/handler/http/respond"
	catUC "direct-admission/internal/usecase/catalog"
)

// CreateCollegeHandler serves POST /api/colleges.
type CreateCollegeHandler struct{ Svc *catUC.Service }

func (h CreateCollegeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var c entity.College
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	added, err := h.Svc.AddCollege(r.Context(), c)
	accepted(w, http.StatusCreated, added, err)
}

// UpdateCollegeHandler serves PUT /api/colleges/{id}.
type UpdateCollegeHandler struct{ Svc *catUC.Service }

func (h UpdateCollegeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/colleges/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var c entity.College
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	c.ID = id
	accepted(w, http.StatusOK, nil, h.Svc.UpdateCollege(r.Context(), c))
}

// DeleteCollegeHandler serves DELETE /api/colleges/{id}. A college that
// still has courses is refused with 409.
type DeleteCollegeHandler struct{ Svc *catUC.Service }

func (h DeleteCollegeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/colleges/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.RemoveCollege(r.Context(), id))
}
