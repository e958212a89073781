// Package enricher provides AI-powered batch enrichment of news items.
// It sends one summaries request and one entities request per batch, each
// covering every item in a single prompt, and tolerates malformed model
// output by degrading to empty enrichment instead of failing the batch.
package enricher

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds configuration parameters shared by the enrichment providers.
type Config struct {
	// PerItemLimit is the maximum number of characters of article body
	// included per item in a batch prompt. Longer bodies are truncated.
	// Loaded from ENRICHER_ITEM_CHAR_LIMIT. Default: 2000.
	PerItemLimit int

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single enrichment API call.
	Timeout time.Duration
}

// LoadConfig loads enricher configuration from environment variables.
// Invalid values fall back to the default with a warning log.
//
// Environment variables:
//   - ENRICHER_ITEM_CHAR_LIMIT: Per-item body limit (default: 2000, range: 200-10000)
func LoadConfig() Config {
	const (
		defaultItemLimit = 2000
		minItemLimit     = 200
		maxItemLimit     = 10000
	)

	itemLimit := defaultItemLimit

	if envLimit := os.Getenv("ENRICHER_ITEM_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			slog.Warn("Invalid ENRICHER_ITEM_CHAR_LIMIT format, using default",
				slog.String("value", envLimit),
				slog.Int("default", defaultItemLimit),
				slog.String("error", err.Error()))
		} else if parsed < minItemLimit || parsed > maxItemLimit {
			slog.Warn("ENRICHER_ITEM_CHAR_LIMIT out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("min", minItemLimit),
				slog.Int("max", maxItemLimit),
				slog.Int("default", defaultItemLimit))
		} else {
			itemLimit = parsed
		}
	}

	return Config{
		PerItemLimit: itemLimit,
		MaxTokens:    4096,
		Timeout:      120 * time.Second,
	}
}
