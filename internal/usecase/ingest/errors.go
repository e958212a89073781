// Package ingest provides the news ingestion pipeline use case. It
// orchestrates fetching the feed, scraping article bodies, AI enrichment,
// and merge-persisting the results.
package ingest

import "errors"

// Sentinel errors for ingestion pipeline operations.
var (
	// ErrFeedFetchFailed indicates that fetching the feed from the source URL failed.
	// This can occur due to network issues, invalid URLs, or server errors.
	ErrFeedFetchFailed = errors.New("failed to fetch feed from source")

	// ErrInvalidFeedFormat indicates that the feed content could not be parsed.
	// This typically happens when the feed is not valid RSS or Atom format.
	ErrInvalidFeedFormat = errors.New("invalid feed format")

	// ErrEnrichmentFailed indicates that AI enrichment of a news batch failed.
	// This can occur due to API errors, rate limits, or invalid content.
	ErrEnrichmentFailed = errors.New("failed to enrich news batch")
)
