package auth

import (
	"net/http"
	"strings"
)

// publicRoutes need no token: probes, the student-facing catalog and the
// login itself. "*" matches any method.
var publicRoutes = []struct {
	method string
	path   string
}{
	{"*", "/health"},
	{"*", "/ready"},
	{"*", "/live"},
	{"*", "/metrics"},
	{http.MethodPost, "/auth/login"},
	{http.MethodGet, "/api/catalog"},
	{http.MethodGet, "/api/search"},
	{http.MethodPost, "/api/ai/search"},
}

// IsPublicRequest reports whether method and path bypass authentication.
// A single trailing slash is ignored.
func IsPublicRequest(method, path string) bool {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	for _, route := range publicRoutes {
		if route.path == path && (route.method == "*" || route.method == method) {
			return true
		}
	}
	return false
}
