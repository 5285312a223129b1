package auth

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"direct-admission/internal/handler/http/pathutil"
)

// Login outcomes.
const (
	loginSuccess       = "success"
	loginBadRequest    = "bad_request"
	loginNotAuthorized = "not_authorized"
	loginInvalidRole   = "invalid_role"
	loginError         = "error"
)

var (
	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_logins_total",
			Help: "Total login attempts by role and outcome",
		},
		[]string{"role", "outcome"},
	)

	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_login_duration_seconds",
			Help:    "Time taken to admit a login",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// reason: missing_token, invalid_token, unknown_user, forbidden
	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_auth_rejections_total",
			Help: "Requests rejected by the authorization middleware",
		},
		[]string{"reason", "role", "method", "route"},
	)
)

func recordLogin(role, outcome string, start time.Time) {
	if role == "" {
		role = "unknown"
	}
	loginsTotal.WithLabelValues(role, outcome).Inc()
	loginDuration.Observe(time.Since(start).Seconds())
}

func recordRejection(reason, role, method, path string) {
	if role == "" {
		role = "none"
	}
	rejectionsTotal.WithLabelValues(reason, role, method, pathutil.NormalizePath(path)).Inc()
}

// tokenRejectReason maps a bearer token error to its rejection label.
func tokenRejectReason(err error) string {
	if errors.Is(err, ErrMissingToken) {
		return "missing_token"
	}
	return "invalid_token"
}
