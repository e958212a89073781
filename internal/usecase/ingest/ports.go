package ingest

import (
	"context"
	"time"

	"easy-news/internal/domain/entity"
)

// FeedItem represents a single normalized entry from the news feed.
// Category and MediaURL are already reduced to plain strings at the parse
// boundary; either may be empty when the feed omits them.
type FeedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Category    string
	MediaURL    string
	PublishedAt time.Time
}

// FeedFetcher is an interface for fetching and parsing the news feed from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// ContentScraper is an interface for extracting the article body text from a
// news page URL. Implementations return the cleaned plain text, or an error
// when no usable body could be extracted.
type ContentScraper interface {
	ExtractArticle(ctx context.Context, url string) (string, error)
}

// ArticleText is the per-article input handed to the enricher.
type ArticleText struct {
	Title string
	Body  string
}

// Enrichment holds the AI-generated fields for one article. A zero value
// means enrichment produced nothing usable for that article; persistence
// treats empty fields as "leave existing data alone".
type Enrichment struct {
	Summary       string
	Summary3Lines string
	EasySummary   string
	Entities      []entity.Entity
}

// Enricher is an interface for AI-powered batch enrichment. Implementations
// must return one Enrichment per input article, in input order. A malformed
// model response degrades to zero-value Enrichments rather than an error.
type Enricher interface {
	EnrichBatch(ctx context.Context, articles []ArticleText) ([]Enrichment, error)
}
