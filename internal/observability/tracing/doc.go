// Package tracing provides OpenTelemetry tracing integration.
//
// It offers an HTTP middleware that starts a server span per request,
// helpers for internal spans around search, mutation and reload
// operations, and InitProvider to install the SDK tracer provider at
// startup.
//
//	shutdown := tracing.InitProvider(1.0)
//	defer func() { _ = shutdown(context.Background()) }()
package tracing
