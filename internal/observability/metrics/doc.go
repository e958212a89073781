// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Pipeline metrics (feed fetch, scrape, enrichment, notifications)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "easy-news/internal/observability/metrics"
//
//	func runIngest(ctx context.Context) {
//	    start := time.Now()
//	    // ... fetch, scrape, enrich, store ...
//	    metrics.RecordIngestRun("success", time.Since(start))
//	}
package metrics
