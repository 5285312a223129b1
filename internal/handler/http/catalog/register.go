package catalog

import (
	"net/http"

	catUC "direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
)

// Deps are the collaborators of the catalog routes.
type Deps struct {
	Catalog *catUC.Service
	Search  *search.Service
	// Parser backs POST /api/ai/search. Nil disables the endpoint (503).
	Parser search.QueryParser
	// HintLimit wraps the query assistant route, typically a per-IP rate
	// limiter. Nil applies no limit.
	HintLimit func(http.Handler) http.Handler
}

// Register mounts the catalog routes on mux. Authentication and role checks
// are applied around the whole mux by auth.Authz.
func Register(mux *http.ServeMux, d Deps) {
	limit := d.HintLimit
	if limit == nil {
		limit = func(h http.Handler) http.Handler { return h }
	}

	// 公開
	mux.Handle("GET /api/catalog", CatalogHandler{d.Search})
	mux.Handle("GET /api/search", SearchHandler{d.Search})
	mux.Handle("POST /api/ai/search", limit(HintHandler{d.Parser}))

	// 管理画面
	mux.Handle("GET /api/data", DataHandler{d.Catalog})
	mux.Handle("POST /api/refresh", RefreshHandler{d.Catalog})
	mux.Handle("POST /api/save-courses", SaveCoursesHandler{d.Catalog})
	mux.Handle("POST /api/save-colleges", SaveCollegesHandler{d.Catalog})
	mux.Handle("POST /api/save-users", SaveUsersHandler{d.Catalog})

	mux.Handle("POST   /api/courses", CreateCourseHandler{d.Catalog})
	mux.Handle("PUT    /api/courses/", UpdateCourseHandler{d.Catalog})
	mux.Handle("DELETE /api/courses/", DeleteCourseHandler{d.Catalog})

	mux.Handle("POST   /api/colleges", CreateCollegeHandler{d.Catalog})
	mux.Handle("PUT    /api/colleges/", UpdateCollegeHandler{d.Catalog})
	mux.Handle("DELETE /api/colleges/", DeleteCollegeHandler{d.Catalog})

	mux.Handle("POST   /api/users", CreateUserHandler{d.Catalog})
	mux.Handle("DELETE /api/users/", DeleteUserHandler{d.Catalog})

	mux.Handle("GET /api/export", ExportHandler{d.Catalog})
	mux.Handle("POST /api/import", ImportHandler{d.Catalog})
}
