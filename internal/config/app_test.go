package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg := LoadAppConfig()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, "sbs_news", cfg.SourceName)
	assert.Equal(t, "news_id", cfg.LinkParam)
	assert.Equal(t, 5, cfg.ScrapeParallelism)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FEED_URL", "https://example.com/rss")
	t.Setenv("SOURCE_NAME", "example_news")
	t.Setenv("SCRAPE_PARALLELISM", "10")
	t.Setenv("RATE_LIMIT", "60")
	t.Setenv("RATE_WINDOW", "30s")

	cfg := LoadAppConfig()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "https://example.com/rss", cfg.FeedURL)
	assert.Equal(t, "example_news", cfg.SourceName)
	assert.Equal(t, 10, cfg.ScrapeParallelism)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
}

func TestLoadAppConfig_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SCRAPE_PARALLELISM", "0")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := LoadAppConfig()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 5, cfg.ScrapeParallelism)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
