// Package scraper extracts article body text from news pages. It tries a
// list of CSS selectors first and falls back to the Readability algorithm
// when none of them yields a usable body.
package scraper

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for article scraping operations.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type Config struct {
	// PrimarySelector is the CSS selector for the article body on the
	// source site. Text matched here is accepted without a length gate.
	PrimarySelector string

	// FallbackSelectors are tried in order when the primary selector
	// matches nothing. Their text must pass MinContentLength to count.
	FallbackSelectors []string

	// MinContentLength is the minimum rune count for fallback-extracted
	// text to be considered a real article body.
	// Default: 100
	MinContentLength int

	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated for security (SSRF check).
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs controls whether to block access to private IP
	// addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// UseReadability enables the Readability extraction fallback when no
	// selector produces a usable body.
	// Default: true
	UseReadability bool
}

// DefaultConfig returns the default scraper configuration, tuned for the
// SBS news article markup.
func DefaultConfig() Config {
	return Config{
		PrimarySelector: `.text_area[itemprop="articleBody"]`,
		FallbackSelectors: []string{
			".main_text .text_area",
			".article_body",
			".content_body",
			".news_content",
		},
		MinContentLength: 100,
		Timeout:          10 * time.Second,
		MaxBodySize:      10 * 1024 * 1024, // 10MB
		MaxRedirects:     5,
		DenyPrivateIPs:   true,
		UseReadability:   true,
	}
}

// LoadConfigFromEnv loads scraper configuration from environment variables,
// falling back to defaults for anything unset.
//
// Supported environment variables:
//   - SCRAPER_TIMEOUT_SECONDS
//   - SCRAPER_MAX_BODY_SIZE
//   - SCRAPER_MIN_CONTENT_LENGTH
//   - SCRAPER_DENY_PRIVATE_IPS
//   - SCRAPER_USE_READABILITY
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SCRAPER_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SCRAPER_MAX_BODY_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil && size > 0 {
			cfg.MaxBodySize = size
		}
	}
	if v := os.Getenv("SCRAPER_MIN_CONTENT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MinContentLength = n
		}
	}
	if v := os.Getenv("SCRAPER_DENY_PRIVATE_IPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DenyPrivateIPs = b
		}
	}
	if v := os.Getenv("SCRAPER_USE_READABILITY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UseReadability = b
		}
	}

	return cfg
}

// Validate checks if the configuration values are valid and safe.
func (c *Config) Validate() error {
	if c.PrimarySelector == "" {
		return fmt.Errorf("primary selector must not be empty")
	}
	if c.MinContentLength < 0 {
		return fmt.Errorf("min content length must be non-negative, got %d", c.MinContentLength)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 100MB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}
