package metrics

import "time"

// Collection labels used across the catalog metrics.
const (
	CollectionColleges = "colleges"
	CollectionCourses  = "courses"
	CollectionUsers    = "users"
)

// Mutation outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeRejected      = "rejected"
	OutcomePersistFailed = "persist_failed"
)

// UpdateCatalogSize sets the entity gauges after the store is replaced.
func UpdateCatalogSize(colleges, courses, users int) {
	CatalogEntities.WithLabelValues(CollectionColleges).Set(float64(colleges))
	CatalogEntities.WithLabelValues(CollectionCourses).Set(float64(courses))
	CatalogEntities.WithLabelValues(CollectionUsers).Set(float64(users))
}

// RecordSearch records one completed search.
func RecordSearch(resultType, sort string, results int, duration time.Duration) {
	SearchRequestsTotal.WithLabelValues(resultType, sort).Inc()
	SearchResults.Observe(float64(results))
	SearchDuration.Observe(duration.Seconds())
}

// RecordMutation records the outcome of a catalog mutation.
func RecordMutation(collection, op, outcome string) {
	MutationsTotal.WithLabelValues(collection, op, outcome).Inc()
}

// RecordPersistenceFailure records a write-back failure for a collection.
func RecordPersistenceFailure(collection string) {
	PersistenceFailuresTotal.WithLabelValues(collection).Inc()
}

// RecordReload records a reload attempt and its duration.
func RecordReload(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	ReloadsTotal.WithLabelValues(status).Inc()
	ReloadDuration.Observe(duration.Seconds())
}

// RecordQueryHint records a query parser call.
// Status is one of "success", "failure" or "empty".
func RecordQueryHint(provider, status string, duration time.Duration) {
	QueryHintsTotal.WithLabelValues(provider, status).Inc()
	QueryHintDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "read_courses", "write_colleges").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetBreakerState publishes a breaker transition. state follows gobreaker's
// numbering: 0 closed, 1 half-open, 2 open.
func SetBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
