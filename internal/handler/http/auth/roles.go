package auth

import (
	"net/http"
	"strings"

	"direct-admission/internal/domain/entity"
)

// Permission allows one method on a set of paths. A path ending in "/*"
// matches the prefix itself and everything below it; "/*" alone matches
// every path.
type Permission struct {
	Method string
	Paths  []string
}

var readPaths = []string{"/api/data", "/api/export"}

// RolePermissions is the access table of the management API. Public
// endpoints (see IsPublicRequest) are not listed.
var RolePermissions = map[entity.Role][]Permission{
	entity.RoleAdmin: {
		{Method: "*", Paths: []string{"/*"}},
	},
	entity.RoleEditor: {
		{Method: http.MethodGet, Paths: readPaths},
		{Method: http.MethodPost, Paths: []string{"/api/courses", "/api/colleges", "/api/refresh"}},
		{Method: http.MethodPut, Paths: []string{"/api/courses/*", "/api/colleges/*"}},
	},
	entity.RoleViewer: {
		{Method: http.MethodGet, Paths: readPaths},
	},
}

// Allowed reports whether role may call method on path.
func Allowed(role entity.Role, method, path string) bool {
	for _, perm := range RolePermissions[role] {
		if perm.Method != "*" && perm.Method != method {
			continue
		}
		if matchesPathPattern(path, perm.Paths) {
			return true
		}
	}
	return false
}

func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}
