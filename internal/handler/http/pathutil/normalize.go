package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order; the first match wins.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/courses/[^/]+$`), Template: "/api/courses/:id"},
	{Pattern: regexp.MustCompile(`^/api/colleges/[^/]+$`), Template: "/api/colleges/:id"},
	{Pattern: regexp.MustCompile(`^/api/users/[^/]+$`), Template: "/api/users/:email"},
}

// NormalizePath collapses entity identifiers in a request path into a
// template so that metric labels stay bounded. Static paths are returned
// unchanged.
//
//	NormalizePath("/api/courses/3f2a")        // "/api/courses/:id"
//	NormalizePath("/api/users/a@b.com")       // "/api/users/:email"
//	NormalizePath("/api/search?q=nursing")    // "/api/search"
//	NormalizePath("/health/")                 // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
