// Command diagnose_feed fetches the configured RSS feed and reports what an
// ingestion run would see: item count, resolved stable IDs, and publish
// dates. Useful when the source site changes its feed without notice.
//
// Usage:
//
//	FEED_URL=... go run scripts/diagnose_feed.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"easy-news/internal/config"
	"easy-news/internal/infra/feed"
	"easy-news/internal/utils/identity"
)

type itemReport struct {
	StableID    string `json:"stable_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"published_at"`
	HasCategory bool   `json:"has_category"`
	HasImage    bool   `json:"has_image"`
}

type feedReport struct {
	URL            string       `json:"url"`
	Status         string       `json:"status"`
	ItemCount      int          `json:"item_count"`
	ResponseTimeMS int64        `json:"response_time_ms"`
	Error          string       `json:"error,omitempty"`
	Items          []itemReport `json:"items,omitempty"`
}

func main() {
	cfg := config.LoadAppConfig()
	resolver := identity.NewResolver(cfg.SourceName, cfg.LinkParam)
	fetcher := feed.NewFetcher(&http.Client{Timeout: 30 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report := feedReport{URL: cfg.FeedURL, Status: "OK"}

	start := time.Now()
	items, err := fetcher.Fetch(ctx, cfg.FeedURL)
	report.ResponseTimeMS = time.Since(start).Milliseconds()

	switch {
	case err != nil:
		report.Status = "FETCH_ERROR"
		report.Error = err.Error()
	case len(items) == 0:
		report.Status = "EMPTY"
	default:
		report.ItemCount = len(items)
		for _, item := range items {
			report.Items = append(report.Items, itemReport{
				StableID:    resolver.Resolve(item.GUID, item.Link),
				Title:       item.Title,
				Link:        item.Link,
				PublishedAt: item.PublishedAt.Format(time.RFC3339),
				HasCategory: item.Category != "",
				HasImage:    item.MediaURL != "",
			})
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if report.Status != "OK" {
		os.Exit(1)
	}
}
