package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readAllHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		auth       string
		body       string
		wantStatus int
	}{
		{name: "plain request", path: "/api/courses", body: `{"courseName":"BSc"}`, wantStatus: http.StatusOK},
		{name: "typical bearer token", path: "/api/data", auth: "Bearer " + strings.Repeat("a", 500), wantStatus: http.StatusOK},
		{name: "authorization at limit", path: "/api/data", auth: strings.Repeat("a", maxAuthHeaderBytes), wantStatus: http.StatusOK},
		{name: "authorization too large", path: "/api/data", auth: strings.Repeat("a", maxAuthHeaderBytes+1), wantStatus: http.StatusBadRequest},
		{name: "path too long", path: "/" + strings.Repeat("p", maxPathBytes), wantStatus: http.StatusRequestURITooLong},
		{name: "body over limit", path: "/api/import", body: strings.Repeat("x", 65), wantStatus: http.StatusRequestEntityTooLarge},
	}

	h := InputValidation(64)(readAllHandler(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
