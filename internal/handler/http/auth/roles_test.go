package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"direct-admission/internal/domain/entity"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role   entity.Role
		method string
		path   string
		want   bool
	}{
		// admin
		{entity.RoleAdmin, http.MethodDelete, "/api/colleges/col_1", true},
		{entity.RoleAdmin, http.MethodPost, "/api/save-users", true},
		{entity.RoleAdmin, http.MethodPost, "/api/import", true},
		{entity.RoleAdmin, http.MethodDelete, "/api/users/a@x.com", true},

		// editor
		{entity.RoleEditor, http.MethodGet, "/api/data", true},
		{entity.RoleEditor, http.MethodGet, "/api/export", true},
		{entity.RoleEditor, http.MethodPost, "/api/courses", true},
		{entity.RoleEditor, http.MethodPut, "/api/courses/42", true},
		{entity.RoleEditor, http.MethodPost, "/api/colleges", true},
		{entity.RoleEditor, http.MethodPut, "/api/colleges/col_1", true},
		{entity.RoleEditor, http.MethodPost, "/api/refresh", true},
		{entity.RoleEditor, http.MethodDelete, "/api/courses/42", false},
		{entity.RoleEditor, http.MethodDelete, "/api/colleges/col_1", false},
		{entity.RoleEditor, http.MethodPost, "/api/users", false},
		{entity.RoleEditor, http.MethodPost, "/api/import", false},
		{entity.RoleEditor, http.MethodPost, "/api/save-courses", false},
		{entity.RoleEditor, http.MethodPut, "/api/coursesX/1", false},

		// viewer
		{entity.RoleViewer, http.MethodGet, "/api/data", true},
		{entity.RoleViewer, http.MethodPost, "/api/courses", false},
		{entity.RoleViewer, http.MethodPost, "/api/refresh", false},

		// unknown role
		{entity.Role("admin"), http.MethodGet, "/api/data", false},
		{entity.Role(""), http.MethodGet, "/api/data", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.method, tt.path))
		})
	}
}

func TestMatchesPathPattern(t *testing.T) {
	assert.True(t, matchesPathPattern("/anything", []string{"/*"}))
	assert.True(t, matchesPathPattern("/api/courses", []string{"/api/courses/*"}))
	assert.True(t, matchesPathPattern("/api/courses/1", []string{"/api/courses/*"}))
	assert.False(t, matchesPathPattern("/api/courses-old", []string{"/api/courses/*"}))
	assert.False(t, matchesPathPattern("/api/data/x", []string{"/api/data"}))
}
