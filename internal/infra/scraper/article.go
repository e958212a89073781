package scraper

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"easy-news/internal/resilience/circuitbreaker"
	"easy-news/internal/resilience/retry"
	"easy-news/internal/utils/text"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/sony/gobreaker"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ArticleScraper implements ingest.ContentScraper. It fetches the article
// page, tries the configured CSS selectors in order, and falls back to
// Readability extraction.
//
// Thread safety: ArticleScraper is safe for concurrent use.
type ArticleScraper struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewArticleScraper creates a new ArticleScraper with the given configuration.
// Each redirect target is validated for security (SSRF check).
func NewArticleScraper(config Config) *ArticleScraper {
	s := &ArticleScraper{
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebScraperConfig()),
		retryConfig:    retry.WebScraperConfig(),
		config:         config,
	}

	s.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= s.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), s.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return s
}

// ExtractArticle fetches the page at urlStr and extracts the article body
// text. It returns ErrNoContent when the page yields no usable body; callers
// should then keep the feed-provided description.
func (s *ArticleScraper) ExtractArticle(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, s.config.DenyPrivateIPs); err != nil {
		return "", fmt.Errorf("ExtractArticle: %w", err)
	}

	var body string
	retryErr := retry.WithBackoff(ctx, s.retryConfig, func() error {
		result, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.doScrape(ctx, urlStr)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("scraper circuit breaker open, request rejected",
					slog.String("service", "web-scraper"),
					slog.String("url", urlStr))
			}
			return err
		}
		body = result.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("ExtractArticle: %w", retryErr)
	}

	return body, nil
}

// doScrape performs the HTTP fetch and extraction without retry or circuit
// breaker.
func (s *ArticleScraper) doScrape(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	limitedReader := io.LimitReader(resp.Body, s.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > s.config.MaxBodySize {
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, s.config.MaxBodySize)
	}

	finalURL := urlStr
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return s.extract(htmlBytes, finalURL)
}

// extract runs selector extraction over the fetched HTML, then Readability
// as a last resort.
func (s *ArticleScraper) extract(htmlBytes []byte, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style").Remove()
	// br tags become newlines so paragraph breaks survive Text().
	doc.Find("br").ReplaceWithHtml("\n")

	// The primary selector is trusted: whatever it matches is the body.
	if sel := doc.Find(s.config.PrimarySelector); sel.Length() > 0 {
		if body := text.NormalizeWhitespace(sel.Text()); body != "" {
			return body, nil
		}
	}

	// Fallback selectors must clear the length gate to rule out matches on
	// navigation or teaser blocks.
	for _, selector := range s.config.FallbackSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		body := text.NormalizeWhitespace(sel.Text())
		if text.CountRunes(body) > s.config.MinContentLength {
			return body, nil
		}
	}

	if s.config.UseReadability {
		if body := s.extractReadability(htmlBytes, pageURL); body != "" {
			return body, nil
		}
	}

	return "", ErrNoContent
}

// extractReadability applies the Readability algorithm as a final fallback
// for pages whose markup matches none of the configured selectors.
func (s *ArticleScraper) extractReadability(htmlBytes []byte, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		parsedURL = nil
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), parsedURL)
	if err != nil {
		slog.Debug("readability extraction failed",
			slog.String("url", pageURL),
			slog.Any("error", err))
		return ""
	}

	body := text.NormalizeWhitespace(article.TextContent)
	if text.CountRunes(body) <= s.config.MinContentLength {
		return ""
	}
	return body
}
