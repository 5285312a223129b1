// Package http provides the HTTP server plumbing of the catalog API:
// health probes, metrics, request logging, panic recovery, rate limiting,
// timeouts and input validation. Route handlers live in sub-packages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"direct-admission/internal/handler/http/respond"
	"direct-admission/internal/repository"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CatalogSource exposes the loaded catalog.
type CatalogSource interface {
	Snapshot() repository.Snapshot
}

// HealthHandler reports the durable store and the loaded catalog.
// DB is nil when the service runs on the in-memory store.
type HealthHandler struct {
	DB      *sql.DB
	Catalog CatalogSource
	Version string
}

// ServeHTTP returns 200 when every check passes or is degraded and 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus, 2)
	if h.DB != nil {
		checks["database"] = checkDatabase(ctx, h.DB)
	} else {
		checks["database"] = CheckStatus{Status: "healthy", Message: "in-memory store"}
	}
	if h.Catalog != nil {
		checks["catalog"] = checkCatalog(h.Catalog.Snapshot())
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case "unhealthy":
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
		case "degraded":
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkDatabase(ctx context.Context, db *sql.DB) CheckStatus {
	if err := db.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "health: database ping failed", slog.Any("error", err))
		return CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}

	stats := db.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "degraded", Message: "connection pool max connections not configured", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	// 80%超えは警告扱い
	if utilization >= 80.0 {
		return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// checkCatalog is degraded while the store holds no colleges or no users;
// an empty user collection means nobody can sign in.
func checkCatalog(snap repository.Snapshot) CheckStatus {
	details := map[string]interface{}{
		"colleges": len(snap.Colleges),
		"courses":  len(snap.Courses),
		"users":    len(snap.Users),
	}
	switch {
	case len(snap.Users) == 0:
		return CheckStatus{Status: "degraded", Message: "no users loaded", Details: details}
	case len(snap.Colleges) == 0:
		return CheckStatus{Status: "degraded", Message: "catalog is empty", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers readiness probes. The service is ready once the
// catalog has been loaded and, when configured, the database answers.
type ReadyHandler struct {
	DB     *sql.DB
	Loaded func() bool
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Loaded != nil && !h.Loaded() {
		http.Error(w, "catalog not loaded", http.StatusServiceUnavailable)
		return
	}
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Warn("alive: failed to write response", slog.Any("error", err))
	}
}
