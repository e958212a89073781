// Package config holds application-level configuration for the API server
// and the ingestion pipeline. Infrastructure packages (db, scraper,
// enricher, notifier) load their own settings; this package covers what
// the entrypoints wire together.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultFeedURL is the newsflash RSS feed ingested when FEED_URL is unset.
const DefaultFeedURL = "https://news.sbs.co.kr/news/newsflashRssFeed.do?plink=RSSREADER"

// AppConfig is the top-level configuration for the API server.
type AppConfig struct {
	// HTTPPort is the API listen port. Default: 8080.
	HTTPPort int

	// FeedURL is the RSS feed to ingest. Default: DefaultFeedURL.
	FeedURL string

	// SourceName prefixes generated document IDs (e.g. "sbs_news_<id>").
	// Default: "sbs_news".
	SourceName string

	// LinkParam is the query parameter in article links that carries the
	// source's article ID. Default: "news_id".
	LinkParam string

	// ScrapeParallelism caps concurrent article scrapes per ingest run.
	// Default: 5.
	ScrapeParallelism int

	// RequestTimeout bounds each HTTP request. Default: 30s.
	RequestTimeout time.Duration

	// RateLimit caps requests per client IP within RateWindow.
	// Defaults: 120 requests per minute.
	RateLimit  int
	RateWindow time.Duration
}

// LoadAppConfig reads the application configuration from environment
// variables, applying defaults for anything unset or unparseable.
func LoadAppConfig() AppConfig {
	cfg := AppConfig{
		HTTPPort:          8080,
		FeedURL:           DefaultFeedURL,
		SourceName:        "sbs_news",
		LinkParam:         "news_id",
		ScrapeParallelism: 5,
		RequestTimeout:    30 * time.Second,
		RateLimit:         120,
		RateWindow:        time.Minute,
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			cfg.HTTPPort = port
		}
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.FeedURL = v
	}
	if v := os.Getenv("SOURCE_NAME"); v != "" {
		cfg.SourceName = v
	}
	if v := os.Getenv("FEED_LINK_PARAM"); v != "" {
		cfg.LinkParam = v
	}
	if v := os.Getenv("SCRAPE_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			cfg.ScrapeParallelism = n
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit = n
		}
	}
	if v := os.Getenv("RATE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RateWindow = d
		}
	}

	return cfg
}

// Addr returns the listen address for the HTTP server.
func (c AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
