package metrics

import (
	"time"
)

// RecordFeedFetch records a completed feed fetch with the number of items
// parsed out of the response.
func RecordFeedFetch(duration time.Duration, itemsFound int) {
	FeedFetchDuration.Observe(duration.Seconds())
	FeedItemsFetchedTotal.Add(float64(itemsFound))
}

// RecordFeedFetchError records a feed fetch failure.
// Error types: "fetch_failed", "parse_failed", "empty_feed".
func RecordFeedFetchError(errorType string) {
	FeedFetchErrors.WithLabelValues(errorType).Inc()
}

// RecordIngestRun records one run of the full ingestion pipeline.
// Status should be "success" or "failure".
func RecordIngestRun(status string, duration time.Duration) {
	IngestRunsTotal.WithLabelValues(status).Inc()
	IngestDuration.Observe(duration.Seconds())
}

// RecordItemsIngested records the write breakdown of one ingestion batch.
func RecordItemsIngested(saved, updated int) {
	if saved > 0 {
		ItemsIngestedTotal.WithLabelValues("saved").Add(float64(saved))
	}
	if updated > 0 {
		ItemsIngestedTotal.WithLabelValues("updated").Add(float64(updated))
	}
}

// RecordScrapeSuccess records a successful article body scrape along with
// the extracted content size in characters.
func RecordScrapeSuccess(duration time.Duration, chars int) {
	ScrapeAttemptsTotal.WithLabelValues("success").Inc()
	ScrapeDuration.Observe(duration.Seconds())
	ScrapeContentSize.Observe(float64(chars))
}

// RecordScrapeFailed records a failed article body scrape. The pipeline
// falls back to the feed description, so failures are expected noise.
func RecordScrapeFailed(duration time.Duration) {
	ScrapeAttemptsTotal.WithLabelValues("failure").Inc()
	ScrapeDuration.Observe(duration.Seconds())
}

// RecordNotification records a notification dispatch outcome.
// Outcomes: "sent", "failed", "skipped_window", "no_candidate".
func RecordNotification(outcome string) {
	NotificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordViewIncrement records one view count increment.
func RecordViewIncrement() {
	ViewIncrementsTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_news", "upsert_batch").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
