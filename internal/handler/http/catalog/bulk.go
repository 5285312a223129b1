package catalog

import (
	"encoding/json"
	"net/http"

	"direct-admission/internal/domain/entity"
	catUC "direct-admission/internal/usecase/catalog"
)

const invalidFormat = "invalid data format"

// SaveCoursesHandler serves POST /api/save-courses with {"courses": [...]},
// replacing the whole collection.
type SaveCoursesHandler struct{ Svc *catUC.Service }

func (h SaveCoursesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Courses *[]entity.Course `json:"courses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Courses == nil {
		badRequest(w, invalidFormat, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.ReplaceCourses(r.Context(), *req.Courses))
}

// SaveCollegesHandler serves POST /api/save-colleges with {"colleges": [...]}.
type SaveCollegesHandler struct{ Svc *catUC.Service }

func (h SaveCollegesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Colleges *[]entity.College `json:"colleges"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Colleges == nil {
		badRequest(w, invalidFormat, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.ReplaceColleges(r.Context(), *req.Colleges))
}

// SaveUsersHandler serves POST /api/save-users with {"users": [...]}.
type SaveUsersHandler struct{ Svc *catUC.Service }

func (h SaveUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Users *[]entity.User `json:"users"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Users == nil {
		badRequest(w, invalidFormat, err)
		return
	}
	accepted(w, http.StatusOK, nil, h.Svc.ReplaceUsers(r.Context(), *req.Users))
}
