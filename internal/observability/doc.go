// Package observability groups the logging, metrics, and tracing
// infrastructure shared by the API server and the ingestion worker.
//
// Subpackages:
//   - logging: structured logging with slog and context propagation
//   - metrics: Prometheus registry and recorders for HTTP, database,
//     feed ingestion, scraping, and push notification activity
//   - tracing: OpenTelemetry HTTP middleware and span helpers
package observability
