package catalog

import (
	"encoding/json"
	"net/http"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/pathutil"
	"direct-admission/internal/handler/http/respond"
	catUC "direct-admission/internal/usecase/catalog"
)

// CreateCourseHandler serves POST /api/courses. The response carries the
// stored course with its generated ID and defaults.
type CreateCourseHandler struct{ Svc *catUC.Service }

func (h CreateCourseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var c entity.Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	added, err := h.Svc.AddCourse(r.Context(), c)
	accepted(w, http.StatusCreated, added, err)
}

// UpdateCourseHandler serves PUT /api/courses/{id}. The path ID wins over
// any ID in the body.
type UpdateCourseHandler struct{ Svc *catUC.Service }

func (h UpdateCourseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/courses/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var c entity.Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		badRequest(w, "invalid request", err)
		return
	}
	c.ID = id
	accepted(w, http.StatusOK, nil, h.Svc.UpdateCourse(r.Context(), c))
}

// DeleteCourseHandler serves DELETE /api/courses/{id}.
type DeleteCourseHandler struct{ Svc *catUC.Service }

func (h DeleteCourseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/api/courses/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.RemoveCourse(r.Context(), id))
}
