// Package feed provides the RSS fetcher for the news source feed.
// It uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"easy-news/internal/resilience/circuitbreaker"
	"easy-news/internal/resilience/retry"
	"easy-news/internal/usecase/ingest"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// Fetcher implements ingest.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFetcher creates a new Fetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses the news feed from the given URL.
// It uses circuit breaker and retry logic for improved reliability.
// Entries missing a title or link are skipped; everything else is normalized
// into ingest.FeedItem values.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	var items []ingest.FeedItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		items = cbResult.([]ingest.FeedItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *Fetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ingest.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		title := strings.TrimSpace(it.Title)
		link := strings.TrimSpace(it.Link)
		if title == "" || link == "" {
			slog.Debug("skipping feed entry without title or link",
				slog.String("guid", it.GUID))
			continue
		}

		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		items = append(items, ingest.FeedItem{
			GUID:        strings.TrimSpace(it.GUID),
			Title:       title,
			Link:        link,
			Description: strings.TrimSpace(it.Description),
			Category:    firstCategory(it),
			MediaURL:    mediaContentURL(it),
			PublishedAt: pubAt,
		})
	}

	return items, nil
}

// firstCategory reduces the feed's category field to a single plain string.
// Feeds present categories as a bare string, an array, or a structured value
// with a text node; gofeed flattens all of these into Categories, so the
// first non-blank entry wins.
func firstCategory(it *gofeed.Item) string {
	for _, c := range it.Categories {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// mediaContentURL extracts an image URL from the item's media:content
// extension. The URL appears either as an attribute on the element or as a
// url child element, depending on the feed generator.
func mediaContentURL(it *gofeed.Item) string {
	media, ok := it.Extensions["media"]
	if !ok {
		return ""
	}

	for _, content := range media["content"] {
		if url := strings.TrimSpace(content.Attrs["url"]); url != "" {
			return url
		}
		for _, child := range content.Children["url"] {
			if url := strings.TrimSpace(child.Value); url != "" {
				return url
			}
		}
	}

	return ""
}
