package auth

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"direct-admission/internal/domain/entity"
)

func TestAuthz_RecordsRejections(t *testing.T) {
	issuer := newTestIssuer(t)
	viewer := tokenFor(t, issuer, "viewer@x.com", entity.RoleViewer)
	gone := tokenFor(t, issuer, "gone@x.com", entity.RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		authz  string
		labels []string
	}{
		{"missing token", http.MethodGet, "/api/data", "", []string{"missing_token", "none", "GET", "/api/data"}},
		{"bad token", http.MethodGet, "/api/data", "Bearer nope", []string{"invalid_token", "none", "GET", "/api/data"}},
		{"unknown user", http.MethodGet, "/api/data", "Bearer " + gone, []string{"unknown_user", "none", "GET", "/api/data"}},
		{"forbidden", http.MethodDelete, "/api/courses/c9", "Bearer " + viewer, []string{"forbidden", "Viewer", "DELETE", "/api/courses/:id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rejectionsTotal.WithLabelValues(tt.labels...)
			before := testutil.ToFloat64(c)

			runAuthz(t, testUsers(), tt.method, tt.path, tt.authz)

			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestAuthz_PublicRequestNotRecorded(t *testing.T) {
	c := rejectionsTotal.WithLabelValues("missing_token", "none", "GET", "/api/search")
	before := testutil.ToFloat64(c)

	runAuthz(t, testUsers(), http.MethodGet, "/api/search", "")

	assert.Equal(t, before, testutil.ToFloat64(c))
}

func TestTokenRejectReason(t *testing.T) {
	assert.Equal(t, "missing_token", tokenRejectReason(ErrMissingToken))
	assert.Equal(t, "invalid_token", tokenRejectReason(ErrInvalidToken))
}
