// Package metrics holds the Prometheus collectors of the catalog service
// and small Record* helpers around them.
//
// Collectors are registered with the default registry through promauto
// and served by the /metrics handler:
//   - http_*: request count, duration, sizes and in-flight connections
//   - catalog_*: store size, searches, mutations, write-back failures, reloads
//   - query_hint_*: free-text query parser calls
//   - db_*: durable store query latency and pool usage
//   - circuit_breaker_state: one gauge per named breaker
//
//	start := time.Now()
//	err := svc.Reload(ctx)
//	metrics.RecordReload(err == nil, time.Since(start))
package metrics
