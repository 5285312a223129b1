package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, incoming string) (seen string, header string) {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return seen, w.Header().Get(RequestIDHeader)
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, header := serve(t, "")

	assert.Equal(t, seen, header)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	seen, header := serve(t, "lb-7f3a")

	assert.Equal(t, "lb-7f3a", seen)
	assert.Equal(t, "lb-7f3a", header)
}

func TestMiddleware_RejectsMalformedID(t *testing.T) {
	for _, bad := range []string{"has space", "tab\tid", strings.Repeat("x", maxIDLength+1), "ü-nicode"} {
		seen, _ := serve(t, bad)
		assert.NotEqual(t, bad, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, bad)
	}
}

func TestFromContext_Empty(t *testing.T) {
	assert.Equal(t, "", FromContext(context.Background()))
}
