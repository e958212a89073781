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

// Business metrics track the ingestion and notification pipeline
var (
	// FeedFetchDuration measures time to fetch and parse the news feed
	FeedFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and parse the news feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// FeedItemsFetchedTotal counts items parsed out of the feed
	FeedItemsFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_items_fetched_total",
			Help: "Total number of items parsed from the news feed",
		},
	)

	// FeedFetchErrors counts feed fetch failures by error type
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch errors",
		},
		[]string{"error_type"},
	)

	// IngestRunsTotal counts full ingestion pipeline runs by outcome
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_ingest_runs_total",
			Help: "Total number of ingestion pipeline runs",
		},
		[]string{"status"},
	)

	// IngestDuration measures end-to-end ingestion pipeline duration
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_ingest_duration_seconds",
			Help:    "End-to-end ingestion pipeline duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ItemsIngestedTotal counts stored items by write result
	ItemsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_items_ingested_total",
			Help: "Total number of news items written to the store",
		},
		[]string{"result"}, // result: saved, updated
	)

	// ScrapeAttemptsTotal counts article body scrape attempts by result
	ScrapeAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_scrape_attempts_total",
			Help: "Total number of article body scrape attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ScrapeDuration measures time to scrape one article body
	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_scrape_duration_seconds",
			Help:    "Time taken to scrape an article body",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ScrapeContentSize measures extracted article body size in characters
	ScrapeContentSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "article_scrape_content_chars",
			Help: "Extracted article body size in characters",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400,
			},
		},
	)

	// NotificationsTotal counts notification dispatch outcomes
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_notifications_total",
			Help: "Total number of notification dispatch attempts by outcome",
		},
		[]string{"outcome"}, // outcome: sent, failed, skipped_window, no_candidate
	)

	// ViewIncrementsTotal counts view count increment operations
	ViewIncrementsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_view_increments_total",
			Help: "Total number of view count increments",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
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

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
