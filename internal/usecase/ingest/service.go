// Package ingest implements the feed ingestion pipeline: fetch the news
// feed, resolve stable document IDs, scrape full article bodies, enrich the
// batch with AI-generated summaries and entities, and persist the result.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"easy-news/internal/domain/entity"
	"easy-news/internal/observability/metrics"
	"easy-news/internal/repository"
	"easy-news/internal/utils/identity"
	"easy-news/internal/utils/text"

	"golang.org/x/sync/errgroup"
)

const (
	defaultScrapeParallelism = 5
	descriptionLimit         = 500
)

// Config holds configuration for the ingestion pipeline.
type Config struct {
	// FeedURL is the news feed to ingest.
	FeedURL string

	// ScrapeParallelism caps concurrent article body scrapes.
	ScrapeParallelism int
}

// Service orchestrates one ingestion run end to end.
// Scraper and Enricher may be nil; the pipeline then falls back to feed
// descriptions and stores items without AI fields.
type Service struct {
	repo     repository.NewsRepository
	fetcher  FeedFetcher
	scraper  ContentScraper
	enricher Enricher
	resolver *identity.Resolver
	config   Config
}

// NewService creates a new ingestion Service.
func NewService(
	repo repository.NewsRepository,
	fetcher FeedFetcher,
	scraper ContentScraper,
	enricher Enricher,
	resolver *identity.Resolver,
	config Config,
) *Service {
	if config.ScrapeParallelism <= 0 {
		config.ScrapeParallelism = defaultScrapeParallelism
	}
	return &Service{
		repo:     repo,
		fetcher:  fetcher,
		scraper:  scraper,
		enricher: enricher,
		resolver: resolver,
		config:   config,
	}
}

// Stats contains statistics about one ingestion run.
type Stats struct {
	FeedItems       int
	Deduplicated    int
	Scraped         int64
	ScrapeFallbacks int64
	Enriched        int
	Saved           int
	Updated         int
	Duration        time.Duration
}

// Run executes one full ingestion pass:
//  1. Fetch and parse the feed
//  2. Resolve a stable document ID per item and drop in-batch duplicates
//  3. Scrape full article bodies in parallel, falling back to the feed
//     description when extraction fails
//  4. Enrich the batch with summaries and entities (best effort)
//  5. Upsert the batch into the store
//
// Enrichment failures degrade to items without AI fields; only feed fetch
// and store errors abort the run.
func (s *Service) Run(ctx context.Context) (*Stats, error) {
	logger := slog.Default()
	start := time.Now()
	stats := &Stats{}

	fetchStart := time.Now()
	feedItems, err := s.fetcher.Fetch(ctx, s.config.FeedURL)
	if err != nil {
		metrics.RecordFeedFetchError("fetch_failed")
		metrics.RecordIngestRun("failure", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrFeedFetchFailed, err)
	}
	metrics.RecordFeedFetch(time.Since(fetchStart), len(feedItems))
	stats.FeedItems = len(feedItems)

	if len(feedItems) == 0 {
		logger.Info("feed is empty, nothing to ingest",
			slog.String("feed_url", s.config.FeedURL))
		metrics.RecordFeedFetchError("empty_feed")
		stats.Duration = time.Since(start)
		metrics.RecordIngestRun("success", stats.Duration)
		return stats, nil
	}

	items := s.buildBatch(feedItems, stats)

	bodies := s.scrapeBodies(ctx, items, stats)
	if err := ctx.Err(); err != nil {
		metrics.RecordIngestRun("failure", time.Since(start))
		return stats, fmt.Errorf("Run: %w", err)
	}

	stats.Enriched = s.enrichBatch(ctx, items, bodies)

	result, err := s.repo.UpsertBatch(ctx, items)
	if err != nil {
		metrics.RecordIngestRun("failure", time.Since(start))
		return stats, fmt.Errorf("upsert news batch: %w", err)
	}
	stats.Saved = result.SavedCount
	stats.Updated = result.UpdatedCount
	metrics.RecordItemsIngested(result.SavedCount, result.UpdatedCount)

	stats.Duration = time.Since(start)
	metrics.RecordIngestRun("success", stats.Duration)
	logger.Info("ingestion run completed",
		slog.Int("feed_items", stats.FeedItems),
		slog.Int("deduplicated", stats.Deduplicated),
		slog.Int64("scraped", stats.Scraped),
		slog.Int64("scrape_fallbacks", stats.ScrapeFallbacks),
		slog.Int("enriched", stats.Enriched),
		slog.Int("saved", stats.Saved),
		slog.Int("updated", stats.Updated),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// buildBatch resolves stable IDs, drops in-batch duplicates keeping the
// first occurrence, and caps the batch at the store's atomic write limit.
func (s *Service) buildBatch(feedItems []FeedItem, stats *Stats) []*entity.NewsItem {
	logger := slog.Default()

	seen := make(map[string]bool, len(feedItems))
	items := make([]*entity.NewsItem, 0, len(feedItems))
	for _, fi := range feedItems {
		stableID := s.resolver.Resolve(fi.GUID, fi.Link)
		if seen[stableID] {
			stats.Deduplicated++
			logger.Debug("duplicate item within feed batch, skipping",
				slog.String("stable_id", stableID),
				slog.String("link", fi.Link))
			continue
		}
		seen[stableID] = true

		items = append(items, &entity.NewsItem{
			StableID:    stableID,
			Title:       fi.Title,
			Link:        fi.Link,
			Description: text.Truncate(fi.Description, descriptionLimit),
			Category:    fi.Category,
			MediaURL:    fi.MediaURL,
			PublishedAt: fi.PublishedAt,
		})
	}

	if len(items) > entity.MaxBatchItems {
		logger.Info("feed batch exceeds store write limit, truncating",
			slog.Int("items", len(items)),
			slog.Int("limit", entity.MaxBatchItems))
		items = items[:entity.MaxBatchItems]
	}

	return items
}

// scrapeBodies fetches full article bodies in parallel and returns one body
// per item, in item order. A failed scrape leaves the feed description as
// the body. Scrape errors never abort the run; only context cancellation
// stops the fan-out early.
func (s *Service) scrapeBodies(ctx context.Context, items []*entity.NewsItem, stats *Stats) []string {
	bodies := make([]string, len(items))
	for i, item := range items {
		bodies[i] = item.Description
	}
	if s.scraper == nil {
		return bodies
	}

	sem := make(chan struct{}, s.config.ScrapeParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	for i, item := range items {
		i, item := i, item
		eg.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			defer func() { <-sem }()

			scrapeStart := time.Now()
			body, err := s.scraper.ExtractArticle(egCtx, item.Link)
			scrapeDuration := time.Since(scrapeStart)

			if err != nil {
				// A per-article timeout also unwraps to a context error, so
				// gate propagation on the run's own context state.
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				atomic.AddInt64(&stats.ScrapeFallbacks, 1)
				metrics.RecordScrapeFailed(scrapeDuration)
				slog.Warn("article scrape failed, using feed description",
					slog.String("stable_id", item.StableID),
					slog.String("link", item.Link),
					slog.Any("error", err))
				return nil
			}

			atomic.AddInt64(&stats.Scraped, 1)
			metrics.RecordScrapeSuccess(scrapeDuration, text.CountRunes(body))
			bodies[i] = body
			item.Description = text.Truncate(body, descriptionLimit)
			return nil
		})
	}

	// Only context errors propagate out of the group; swallow them here and
	// let the caller check ctx.
	_ = eg.Wait()
	return bodies
}

// enrichBatch runs AI enrichment over the batch and applies the results in
// place. Returns the number of items that received at least one AI field.
// Enrichment is best effort; any failure leaves every item untouched.
func (s *Service) enrichBatch(ctx context.Context, items []*entity.NewsItem, bodies []string) int {
	if s.enricher == nil || len(items) == 0 {
		return 0
	}

	articles := make([]ArticleText, len(items))
	for i, item := range items {
		articles[i] = ArticleText{Title: item.Title, Body: bodies[i]}
	}

	enrichments, err := s.enricher.EnrichBatch(ctx, articles)
	if err != nil {
		slog.Warn("batch enrichment failed, storing items without AI fields",
			slog.Int("items", len(items)),
			slog.Any("error", err))
		return 0
	}

	enriched := 0
	for i, e := range enrichments {
		if i >= len(items) {
			break
		}
		if e.Summary == "" && e.Summary3Lines == "" && e.EasySummary == "" && len(e.Entities) == 0 {
			continue
		}
		items[i].Summary = e.Summary
		items[i].Summary3Lines = e.Summary3Lines
		items[i].EasySummary = e.EasySummary
		items[i].Entities = e.Entities
		enriched++
	}
	return enriched
}
