package news

import (
	"log/slog"
	"net/http"

	"easy-news/internal/common/pagination"
	"easy-news/internal/usecase/ingest"
	newsUC "easy-news/internal/usecase/news"
)

// Register registers all news-related HTTP handlers with the given mux.
// The ingest service may be nil when the API runs without an ingestion
// pipeline (the worker then owns ingestion exclusively).
func Register(mux *http.ServeMux, svc *newsUC.Service, ingestSvc *ingest.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /news", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /news/popular", PopularHandler{Svc: svc})
	mux.Handle("GET /news/", GetHandler{Svc: svc})
	mux.Handle("POST /news/", ViewHandler{Svc: svc})

	if ingestSvc != nil {
		mux.Handle("POST /ingest", IngestHandler{Svc: ingestSvc, Logger: logger})
	}
}
