package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"direct-admission/internal/domain/entity"
	"direct-admission/internal/handler/http/auth"
	"direct-admission/internal/infra/adapter/persistence/memory"
	"direct-admission/internal/infra/sheet"
	"direct-admission/internal/repository"
	catUC "direct-admission/internal/usecase/catalog"
	"direct-admission/internal/usecase/search"
)

/*──────────────────────── fixtures ────────────────────────*/

// flakyRepo fails every write while failWrites is set.
type flakyRepo struct {
	*memory.CatalogRepo
	mu         sync.Mutex
	failWrites bool
}

func (r *flakyRepo) fail() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errors.New("sheet api: 503")
	}
	return nil
}

func (r *flakyRepo) WriteCourses(ctx context.Context, c []entity.Course) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.CatalogRepo.WriteCourses(ctx, c)
}

func (r *flakyRepo) WriteColleges(ctx context.Context, c []entity.College) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.CatalogRepo.WriteColleges(ctx, c)
}

func (r *flakyRepo) WriteUsers(ctx context.Context, u []entity.User) error {
	if err := r.fail(); err != nil {
		return err
	}
	return r.CatalogRepo.WriteUsers(ctx, u)
}

type stubParser struct {
	hint *search.QueryHint
	err  error
}

func (p stubParser) ParseQuery(context.Context, string) (*search.QueryHint, error) {
	return p.hint, p.err
}

type fixture struct {
	svc  *catUC.Service
	repo *flakyRepo
	mux  *http.ServeMux
}

func seed() repository.Snapshot {
	return repository.Snapshot{
		Colleges: []entity.College{
			{ID: "col_1", Name: "Delhi Technological University", Location: "New Delhi", State: "Delhi", Description: "<p>Public <b>engineering</b> university</p>"},
			{ID: "col_2", Name: "Anna University", Location: "Chennai", State: "Tamil Nadu"},
		},
		Courses: []entity.Course{
			{ID: "c1", CollegeID: "col_1", CourseName: "B.Tech Computer Science", Fees: 220000, Duration: "4 Years"},
			{ID: "c2", CollegeID: "col_2", CourseName: "B.Tech Civil", Fees: 90000, Duration: "4 Years"},
			{ID: "c3", CollegeID: "col_1", CourseName: "MBA", Fees: 400000, Duration: "2 Years"},
		},
		Users: []entity.User{
			{Email: "admin@example.com", Name: "Admin", Role: entity.RoleAdmin},
			{Email: "editor@example.com", Name: "Editor", Role: entity.RoleEditor},
		},
	}
}

func newFixture(t *testing.T, parser search.QueryParser) *fixture {
	t.Helper()
	repo := &flakyRepo{CatalogRepo: memory.NewCatalogRepo(seed())}
	svc := catUC.NewService(catUC.NewStore(repository.Snapshot{}), repo, catUC.Config{})
	require.NoError(t, svc.Reload(context.Background()))

	mux := http.NewServeMux()
	Register(mux, Deps{
		Catalog: svc,
		Search:  &search.Service{Catalog: svc, Parser: parser},
		Parser:  parser,
	})
	return &fixture{svc: svc, repo: repo, mux: mux}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{Email: "admin@example.com", Role: entity.RoleAdmin}))
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

/*──────────────────────── read ────────────────────────*/

func TestCatalogHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/catalog", "")

	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[CatalogDTO](t, rr)
	assert.Len(t, got.Colleges, 2)
	require.Len(t, got.Courses, 3)
	assert.Equal(t, "Anna University", got.Courses[1].CollegeName)
	assert.NotContains(t, rr.Body.String(), "admin@example.com")
}

func TestDataHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/data", "")

	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[DataDTO](t, rr)
	assert.Len(t, got.Courses, 3)
	assert.Len(t, got.Colleges, 2)
	assert.Len(t, got.Users, 2)
	require.NotNil(t, got.LastUpdated)
}

func TestRefreshHandler(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.repo.CatalogRepo.WriteCourses(context.Background(), nil))

	rr := f.do(t, http.MethodPost, "/api/refresh", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":true`)
	assert.Empty(t, f.svc.Snapshot().Courses)
}

/*──────────────────────── search ────────────────────────*/

func TestSearchHandler_Defaults(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/search", "")

	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[SearchResponse](t, rr)
	require.Equal(t, 2, got.Total)
	// 既定は大学のみ・名前順
	assert.Equal(t, entity.ResultCollege, got.Items[0].Type)
	assert.Equal(t, "Anna University", got.Items[0].College.Name)
	assert.Equal(t, "Delhi Technological University", got.Items[1].College.Name)
	assert.Equal(t, "Public engineering university", got.Items[1].Preview)
}

func TestSearchHandler_CoursesByFees(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/search?q=b.tech&type=courses&sort=fees_low", "")

	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[SearchResponse](t, rr)
	require.Equal(t, 2, got.Total)
	assert.Equal(t, "c2", got.Items[0].Course.ID)
	assert.Equal(t, "c1", got.Items[1].Course.ID)
}

func TestSearchHandler_LocationFilter(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/search?type=all&location=tamil&sort=catalog", "")

	got := decode[SearchResponse](t, rr)
	require.Equal(t, 2, got.Total)
	assert.True(t, got.Items[0].IsCourse())
	assert.Equal(t, "c2", got.Items[0].Course.ID)
	assert.Equal(t, "col_2", got.Items[1].College.ID)
}

func TestSearchHandler_Assist(t *testing.T) {
	f := newFixture(t, stubParser{hint: &search.QueryHint{Location: "Delhi", Keyword: "MBA"}})

	rr := f.do(t, http.MethodGet, "/api/search?q=cheap+mba+in+delhi&type=courses&assist=true", "")

	got := decode[SearchResponse](t, rr)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "c3", got.Items[0].Course.ID)
	require.NotNil(t, got.Hint)
	assert.Equal(t, "MBA", got.Hint.Keyword)
}

func TestSearchHandler_AssistFailureFallsBack(t *testing.T) {
	f := newFixture(t, stubParser{err: errors.New("claude api unavailable")})

	rr := f.do(t, http.MethodGet, "/api/search?q=civil&type=courses&assist=1", "")

	got := decode[SearchResponse](t, rr)
	require.Equal(t, 1, got.Total)
	assert.Nil(t, got.Hint)
}

func TestSearchHandler_BadParams(t *testing.T) {
	f := newFixture(t, nil)

	for _, target := range []string{"/api/search?type=schools", "/api/search?assist=maybe"} {
		rr := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestHintHandler(t *testing.T) {
	tests := []struct {
		name       string
		parser     search.QueryParser
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "hint", parser: stubParser{hint: &search.QueryHint{Location: "Bangalore", Keyword: "Engineering"}}, body: `{"userQuery":"cheap engineering colleges in Bangalore"}`, wantStatus: http.StatusOK, wantBody: `{"location":"Bangalore","keyword":"Engineering"}`},
		{name: "nothing found", parser: stubParser{}, body: `{"userQuery":"hello"}`, wantStatus: http.StatusOK, wantBody: `{"location":"","keyword":""}`},
		{name: "not configured", body: `{"userQuery":"x"}`, wantStatus: http.StatusServiceUnavailable, wantBody: `{"error":"query assistant is not configured"}`},
		{name: "parser error", parser: stubParser{err: errors.New("boom")}, body: `{"userQuery":"x"}`, wantStatus: http.StatusServiceUnavailable, wantBody: `{"error":"query assistant is unavailable"}`},
		{name: "empty query", parser: stubParser{}, body: `{"userQuery":"  "}`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"userQuery is required"}`},
		{name: "bad json", parser: stubParser{}, body: `{`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"invalid request"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.parser)
			rr := f.do(t, http.MethodPost, "/api/ai/search", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestRegister_HintLimit(t *testing.T) {
	f := newFixture(t, stubParser{})
	calls := 0
	reject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	mux := http.NewServeMux()
	Register(mux, Deps{
		Catalog:   f.svc,
		Search:    &search.Service{Catalog: f.svc},
		Parser:    stubParser{},
		HintLimit: reject,
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ai/search", strings.NewReader(`{"userQuery":"x"}`)))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 1, calls)
}

/*──────────────────────── courses ────────────────────────*/

func TestCreateCourseHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/courses", `{"collegeId":"col_2","courseName":"M.Tech","fees":150000}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var got struct {
		Success bool          `json:"success"`
		Item    entity.Course `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.NotEmpty(t, got.Item.ID)
	assert.Equal(t, entity.DefaultDuration, got.Item.Duration)
	assert.Equal(t, got.Item.ID, f.svc.Snapshot().Courses[0].ID)
}

func TestCreateCourseHandler_Validation(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/courses", `{"collegeId":"col_2","courseName":"M.Tech","fees":10000000}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "fees")
	assert.Len(t, f.svc.Snapshot().Courses, 3)
}

func TestCreateCourseHandler_PersistenceWarning(t *testing.T) {
	f := newFixture(t, nil)
	f.repo.failWrites = true

	rr := f.do(t, http.MethodPost, "/api/courses", `{"collegeId":"col_2","courseName":"M.Tech","fees":1}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	got := decode[MutationResponse](t, rr)
	assert.True(t, got.Success)
	assert.Equal(t, persistWarning, got.Warning)
	assert.Len(t, f.svc.Snapshot().Courses, 4)
}

func TestUpdateCourseHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPut, "/api/courses/c2", `{"id":"ignored","collegeId":"col_2","courseName":"B.Tech Civil Engineering","fees":95000}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	courses := f.svc.Snapshot().Courses
	assert.Equal(t, "c2", courses[1].ID)
	assert.Equal(t, "B.Tech Civil Engineering", courses[1].CourseName)
}

func TestUpdateCourseHandler_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPut, "/api/courses/nope", `{"collegeId":"col_2","courseName":"X","fees":1}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"course not found"}`, rr.Body.String())
}

func TestDeleteCourseHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodDelete, "/api/courses/c1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, f.svc.Snapshot().Courses, 2)

	rr = f.do(t, http.MethodDelete, "/api/courses/c1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

/*──────────────────────── colleges ────────────────────────*/

func TestCreateCollegeHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/colleges", `{"name":"IIT Madras","location":"Chennai","state":"Tamil Nadu","phone":"9876543210"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	added := f.svc.Snapshot().Colleges[0]
	assert.True(t, strings.HasPrefix(added.ID, "col_"))
	assert.Equal(t, "IIT Madras", added.Name)
}

func TestCreateCollegeHandler_DuplicateID(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/colleges", `{"id":"col_1","name":"IIT Madras","location":"Chennai","state":"Tamil Nadu"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already exists")
	assert.Len(t, f.svc.Snapshot().Colleges, 2)
}

func TestCreateCollegeHandler_InvalidPhone(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/colleges", `{"name":"X","location":"Y","state":"Z","phone":"0123456789"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "phone")
}

func TestUpdateCollegeHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPut, "/api/colleges/col_2", `{"name":"Anna University","location":"Guindy","state":"Tamil Nadu"}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "Guindy", f.svc.Snapshot().Colleges[1].Location)
}

func TestDeleteCollegeHandler_Conflict(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodDelete, "/api/colleges/col_1", "")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "2 existing course(s)")
	assert.Len(t, f.svc.Snapshot().Colleges, 2)
}

func TestDeleteCollegeHandler(t *testing.T) {
	f := newFixture(t, nil)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/courses/c2", "").Code)

	rr := f.do(t, http.MethodDelete, "/api/colleges/col_2", "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, f.svc.Snapshot().Colleges, 1)
}

/*──────────────────────── users ────────────────────────*/

func TestCreateUserHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/users", `{"email":" Viewer@Example.com ","name":"V","role":"Viewer"}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	users := f.svc.Snapshot().Users
	require.Len(t, users, 3)
	assert.Equal(t, "viewer@example.com", users[2].Email)
}

func TestCreateUserHandler_Duplicate(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/users", `{"email":"EDITOR@example.com","name":"E","role":"Viewer"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already exists")
}

func TestCreateUserHandler_InvalidRole(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/users", `{"email":"x@example.com","role":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodDelete, "/api/users/editor%40example.com", "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, f.svc.Snapshot().Users, 1)
}

func TestDeleteUserHandler_Self(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodDelete, "/api/users/ADMIN@example.com", "")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"cannot delete your own account"}`, rr.Body.String())
	assert.Len(t, f.svc.Snapshot().Users, 2)
}

func TestDeleteUserHandler_NoPrincipal(t *testing.T) {
	f := newFixture(t, nil)

	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/users/editor@example.com", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

/*──────────────────────── bulk ────────────────────────*/

func TestSaveHandlers(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		check      func(t *testing.T, snap repository.Snapshot)
	}{
		{
			name:       "courses",
			target:     "/api/save-courses",
			body:       `{"courses":[{"id":"n1","collegeId":"col_1","courseName":"PhD","fees":0}]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, snap repository.Snapshot) {
				require.Len(t, snap.Courses, 1)
				assert.Equal(t, "n1", snap.Courses[0].ID)
			},
		},
		{
			name:       "colleges",
			target:     "/api/save-colleges",
			body:       `{"colleges":[]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, snap repository.Snapshot) {
				assert.Empty(t, snap.Colleges)
				assert.Len(t, snap.Courses, 3)
			},
		},
		{
			name:       "users",
			target:     "/api/save-users",
			body:       `{"users":[{"email":"A@x.com","role":"Admin"}]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, snap repository.Snapshot) {
				require.Len(t, snap.Users, 1)
				assert.Equal(t, "a@x.com", snap.Users[0].Email)
			},
		},
		{
			name:       "missing field",
			target:     "/api/save-courses",
			body:       `{"items":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not an array",
			target:     "/api/save-users",
			body:       `{"users":{"email":"a@x.com"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid item",
			target:     "/api/save-colleges",
			body:       `{"colleges":[{"id":"x","name":""}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate course ids",
			target:     "/api/save-courses",
			body:       `{"courses":[{"id":"n1","collegeId":"col_1","courseName":"PhD"},{"id":"n1","collegeId":"col_2","courseName":"MBA"}]}`,
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, snap repository.Snapshot) {
				assert.Len(t, snap.Courses, 3)
			},
		},
		{
			name:       "duplicate users",
			target:     "/api/save-users",
			body:       `{"users":[{"email":"a@x.com","role":"Admin"},{"email":"A@X.com","role":"Viewer"}]}`,
			wantStatus: http.StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			rr := f.do(t, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.check != nil {
				tt.check(t, f.svc.Snapshot())
			}
		})
	}
}

/*──────────────────────── import / export ────────────────────────*/

func TestExportHandler(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodGet, "/api/export", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")

	sheets, err := sheet.Read(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, sheets[catUC.SheetCourses], 3)
	assert.Len(t, sheets[catUC.SheetUsers], 2)
}

func exportedWorkbook(t *testing.T, snap repository.Snapshot) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, sheet.Write(&buf, snap))
	return buf.Bytes()
}

func TestImportHandler_RawBody(t *testing.T) {
	f := newFixture(t, nil)
	snap := seed()
	snap.Courses = snap.Courses[:1]
	body := exportedWorkbook(t, snap)

	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", xlsxContentType)
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	got := decode[ImportResponse](t, rr)
	require.NotNil(t, got.Summary.Courses)
	assert.Equal(t, 1, *got.Summary.Courses)
	assert.Len(t, f.svc.Snapshot().Courses, 1)
}

func TestImportHandler_Multipart(t *testing.T) {
	f := newFixture(t, nil)
	snap := seed()
	snap.Colleges = snap.Colleges[:1]

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "catalog.xlsx")
	require.NoError(t, err)
	_, err = part.Write(exportedWorkbook(t, snap))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, f.svc.Snapshot().Colleges, 1)
}

func TestImportHandler_NotAWorkbook(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(t, http.MethodPost, "/api/import", "definitely not a zip")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Len(t, f.svc.Snapshot().Courses, 3)
}

/*──────────────────────── preview ────────────────────────*/

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		html string
		max  int
		want string
	}{
		{"empty", "", 10, ""},
		{"strips tags", "<p>Hello <b>world</b></p>", 50, "Hello world"},
		{"collapses whitespace", "<ul><li>One</li>\n\n<li>Two</li></ul>", 50, "One Two"},
		{"truncates", "<p>abcdefghij</p>", 4, "abcd…"},
		{"multibyte", "<p>विश्वविद्यालय</p>", 3, "विश…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.html, tt.max))
		})
	}
}
