package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"easy-news/internal/domain/entity"
	"easy-news/internal/usecase/ingest"
)

// Service implements ingest.Enricher on top of a TextModel. One batch costs
// two model calls: a summaries request and an entities request. The two are
// independent; a failure in one degrades only its own fields.
type Service struct {
	model  TextModel
	config Config
}

// NewService creates an enrichment service backed by the given model.
func NewService(model TextModel, config Config) *Service {
	return &Service{
		model:  model,
		config: config,
	}
}

// NewServiceFromEnv builds the enrichment service from environment
// variables. ENRICHER_PROVIDER selects the model ("claude" or "openai",
// default "claude"); the matching API key env var must be set.
func NewServiceFromEnv() (*Service, error) {
	config := LoadConfig()

	provider := os.Getenv("ENRICHER_PROVIDER")
	if provider == "" {
		provider = "claude"
	}

	switch provider {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("NewServiceFromEnv: ANTHROPIC_API_KEY is not set")
		}
		return NewService(NewClaudeModel(apiKey, config), config), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("NewServiceFromEnv: OPENAI_API_KEY is not set")
		}
		return NewService(NewOpenAIModel(apiKey, config), config), nil
	default:
		return nil, fmt.Errorf("NewServiceFromEnv: unknown provider %q", provider)
	}
}

// EnrichBatch annotates up to entity.MaxBatchItems articles with summaries
// and named entities. It never returns an error for model or parse failures;
// affected articles simply keep zero-value enrichment so persistence of the
// base items is never blocked.
func (s *Service) EnrichBatch(ctx context.Context, articles []ingest.ArticleText) ([]ingest.Enrichment, error) {
	if len(articles) > entity.MaxBatchItems {
		articles = articles[:entity.MaxBatchItems]
	}

	enrichments := make([]ingest.Enrichment, len(articles))
	if len(articles) == 0 {
		return enrichments, nil
	}

	summaries := s.requestSummaries(ctx, articles)
	entities := s.requestEntities(ctx, articles)

	for i := range enrichments {
		enrichments[i] = ingest.Enrichment{
			Summary:       summaries[i].Summary,
			Summary3Lines: summaries[i].Summary3Lines,
			EasySummary:   summaries[i].EasySummary,
			Entities:      entities[i],
		}
	}

	return enrichments, nil
}

// requestSummaries runs the batched summaries call, degrading to zero values
// on failure.
func (s *Service) requestSummaries(ctx context.Context, articles []ingest.ArticleText) []summaryResult {
	start := time.Now()

	response, err := s.model.Complete(ctx, buildSummaryPrompt(articles, s.config.PerItemLimit))
	if err != nil {
		slog.Warn("batch summaries request failed, using empty summaries",
			slog.String("provider", s.model.Name()),
			slog.Int("batch_size", len(articles)),
			slog.Any("error", err))
		recordBatchRequest(s.model.Name(), "summaries", false, time.Since(start))
		return make([]summaryResult, len(articles))
	}

	results := parseSummaries(response, len(articles))
	recordBatchRequest(s.model.Name(), "summaries", true, time.Since(start))

	filled := 0
	for _, r := range results {
		if r.Summary != "" || r.Summary3Lines != "" || r.EasySummary != "" {
			filled++
		}
	}
	if filled < len(articles) {
		slog.Warn("summaries response incomplete",
			slog.String("provider", s.model.Name()),
			slog.Int("batch_size", len(articles)),
			slog.Int("filled", filled))
		recordParseGap("summaries", len(articles)-filled)
	}

	return results
}

// requestEntities runs the batched entity extraction call, degrading to
// empty lists on failure.
func (s *Service) requestEntities(ctx context.Context, articles []ingest.ArticleText) [][]entity.Entity {
	start := time.Now()

	response, err := s.model.Complete(ctx, buildEntityPrompt(articles, s.config.PerItemLimit))
	if err != nil {
		slog.Warn("batch entities request failed, using empty entity lists",
			slog.String("provider", s.model.Name()),
			slog.Int("batch_size", len(articles)),
			slog.Any("error", err))
		recordBatchRequest(s.model.Name(), "entities", false, time.Since(start))

		empty := make([][]entity.Entity, len(articles))
		for i := range empty {
			empty[i] = []entity.Entity{}
		}
		return empty
	}

	recordBatchRequest(s.model.Name(), "entities", true, time.Since(start))
	return parseEntities(response, len(articles))
}
