// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Database metrics track the durable catalog store
var (
	// DBQueryDuration measures database operation latency by operation
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks connections currently in use
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of database connections in use",
		},
	)

	// DBConnectionsIdle tracks idle pooled connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Catalog metrics track the entity store, searches and mutations
var (
	// CatalogEntities tracks the number of entities held by the store per collection
	CatalogEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_entities",
			Help: "Number of entities currently held in the catalog store",
		},
		[]string{"collection"}, // colleges, courses, users
	)

	// SearchRequestsTotal counts searches by result type and sort mode
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_search_requests_total",
			Help: "Total number of catalog searches",
		},
		[]string{"result_type", "sort"},
	)

	// SearchResults measures how many items a search returned
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Number of items returned by a catalog search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// SearchDuration measures the time to assemble and rank a search
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Time taken to assemble and rank a catalog search",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
	)

	// MutationsTotal counts catalog mutations by collection, operation and outcome
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of catalog mutations",
		},
		[]string{"collection", "op", "outcome"}, // outcome: success, rejected, persist_failed
	)

	// PersistenceFailuresTotal counts write-backs that failed after an in-memory mutation
	PersistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_persistence_failures_total",
			Help: "Total number of failed write-backs to the durable store",
		},
		[]string{"collection"},
	)

	// ReloadsTotal counts full reloads from the durable store by status
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"status"},
	)

	// ReloadDuration measures time to reload the catalog
	ReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_reload_duration_seconds",
			Help:    "Time taken to reload the catalog from the durable store",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	// QueryHintsTotal counts query parser calls by provider and status
	QueryHintsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_hints_total",
			Help: "Total number of query hint requests",
		},
		[]string{"provider", "status"},
	)

	// QueryHintDuration measures query parser latency
	QueryHintDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_hint_duration_seconds",
			Help:    "Time taken to parse a free-text query",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)
)

// Resilience metrics
var (
	// CircuitBreakerState reports each breaker's state: 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
