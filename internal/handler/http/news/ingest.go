package news

import (
	"log/slog"
	"net/http"

	"easy-news/internal/handler/http/respond"
	"easy-news/internal/usecase/ingest"
)

type IngestHandler struct {
	Svc    *ingest.Service
	Logger *slog.Logger
}

// ingestResponse is the JSON result of a manual ingestion run.
type ingestResponse struct {
	FeedItems       int    `json:"feed_items"`
	Deduplicated    int    `json:"deduplicated"`
	Scraped         int64  `json:"scraped"`
	ScrapeFallbacks int64  `json:"scrape_fallbacks"`
	Enriched        int    `json:"enriched"`
	Saved           int    `json:"saved"`
	Updated         int    `json:"updated"`
	DurationMillis  int64  `json:"duration_ms"`
	Message         string `json:"message"`
}

// ServeHTTP triggers one synchronous ingestion run.
// @Summary      Trigger ingestion
// @Description  Runs the full ingestion pipeline once (fetch, scrape, enrich, store) and returns run statistics. The worker runs the same pipeline on a schedule; this endpoint exists for manual backfills.
// @Tags         ingest
// @Produce      json
// @Success      200 {object} ingestResponse
// @Failure      500 {string} string "ingestion failed"
// @Router       /ingest [post]
func (h IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Run(r.Context())
	if err != nil {
		h.Logger.Error("manual ingestion run failed",
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, ingestResponse{
		FeedItems:       stats.FeedItems,
		Deduplicated:    stats.Deduplicated,
		Scraped:         stats.Scraped,
		ScrapeFallbacks: stats.ScrapeFallbacks,
		Enriched:        stats.Enriched,
		Saved:           stats.Saved,
		Updated:         stats.Updated,
		DurationMillis:  stats.Duration.Milliseconds(),
		Message:         "ingestion completed",
	})
}
