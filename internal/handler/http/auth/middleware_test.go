package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"direct-admission/internal/domain/entity"
)

type stubUsers map[string]entity.User

func (s stubUsers) User(email string) (entity.User, bool) {
	u, ok := s[entity.NormalizeEmail(email)]
	return u, ok
}

func testUsers() stubUsers {
	return stubUsers{
		"admin@x.com":  {Email: "admin@x.com", Role: entity.RoleAdmin},
		"editor@x.com": {Email: "editor@x.com", Role: entity.RoleEditor},
		"viewer@x.com": {Email: "viewer@x.com", Role: entity.RoleViewer},
	}
}

func tokenFor(t *testing.T, issuer *Issuer, email string, role entity.Role) string {
	t.Helper()
	token, _, err := issuer.Issue(entity.User{Email: email, Role: role})
	require.NoError(t, err)
	return token
}

func runAuthz(t *testing.T, users UserLookup, method, path, authz string) (*httptest.ResponseRecorder, *Principal) {
	t.Helper()
	var seen *Principal
	h := Authz(newTestIssuer(t), users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFromContext(r.Context()); ok {
			seen = &p
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w, seen
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthz_PublicBypass(t *testing.T) {
	w, p := runAuthz(t, testUsers(), http.MethodGet, "/api/search", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, p)
}

func TestAuthz_MissingToken(t *testing.T) {
	w, _ := runAuthz(t, testUsers(), http.MethodGet, "/api/data", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errorBody(t, w))
}

func TestAuthz_BadToken(t *testing.T) {
	w, _ := runAuthz(t, testUsers(), http.MethodGet, "/api/data", "Bearer nope")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthz_AllowsByRole(t *testing.T) {
	issuer := newTestIssuer(t)
	token := tokenFor(t, issuer, "editor@x.com", entity.RoleEditor)

	w, p := runAuthz(t, testUsers(), http.MethodPut, "/api/courses/7", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, p)
	assert.Equal(t, Principal{Email: "editor@x.com", Role: entity.RoleEditor}, *p)
}

func TestAuthz_Forbidden(t *testing.T) {
	issuer := newTestIssuer(t)
	token := tokenFor(t, issuer, "viewer@x.com", entity.RoleViewer)

	w, p := runAuthz(t, testUsers(), http.MethodDelete, "/api/courses/7", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorBody(t, w))
	assert.Nil(t, p)
}

func TestAuthz_UsesCurrentRole(t *testing.T) {
	issuer := newTestIssuer(t)
	// issued while admin, since demoted
	token := tokenFor(t, issuer, "editor@x.com", entity.RoleAdmin)

	w, _ := runAuthz(t, testUsers(), http.MethodDelete, "/api/colleges/col_1", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthz_RemovedUser(t *testing.T) {
	issuer := newTestIssuer(t)
	token := tokenFor(t, issuer, "gone@x.com", entity.RoleAdmin)

	w, _ := runAuthz(t, testUsers(), http.MethodGet, "/api/data", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
