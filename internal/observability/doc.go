// Package observability groups the process-wide telemetry of the catalog
// service.
//
// Subpackages:
//   - logging: slog loggers and context propagation
//   - metrics: Prometheus registry and Record* helpers for the catalog
//   - tracing: OpenTelemetry provider, spans and HTTP middleware
package observability
