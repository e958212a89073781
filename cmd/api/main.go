package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"easy-news/internal/common/pagination"
	"easy-news/internal/config"
	pgRepo "easy-news/internal/infra/adapter/persistence/postgres"
	"easy-news/internal/infra/db"
	"easy-news/internal/infra/enricher"
	"easy-news/internal/infra/feed"
	"easy-news/internal/infra/scraper"
	"easy-news/internal/observability/logging"
	"easy-news/internal/observability/tracing"
	"easy-news/internal/repository"
	ingestUC "easy-news/internal/usecase/ingest"
	newsUC "easy-news/internal/usecase/news"
	"easy-news/internal/utils/identity"

	hhttp "easy-news/internal/handler/http"
	hnews "easy-news/internal/handler/http/news"
	"easy-news/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()
	cfg := config.LoadAppConfig()

	overrides, err := config.LoadOverridesFromEnv()
	if err != nil {
		logger.Error("failed to load config overrides", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, database, cfg, overrides, getVersion())
	runServer(logger, cfg, handler)
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the connection pool and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, services, routes, and middleware into the
// root handler.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	cfg config.AppConfig,
	overrides *config.Overrides,
	version string,
) http.Handler {
	repo := pgRepo.NewNewsRepo(database)

	paginationCfg := pagination.LoadFromEnv()
	newsSvc := newsUC.NewService(repo, paginationCfg)
	ingestSvc := setupIngestService(logger, repo, cfg, overrides)

	mux := http.NewServeMux()
	hnews.Register(mux, newsSvc, ingestSvc, paginationCfg, logger)

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Repo: repo, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", promhttp.Handler())

	return applyMiddleware(logger, cfg, mux)
}

// setupIngestService builds the full ingestion pipeline for the manual
// trigger endpoint. Enrichment is optional: a missing API key logs a
// warning and the pipeline stores items without AI fields.
func setupIngestService(
	logger *slog.Logger,
	repo repository.NewsRepository,
	cfg config.AppConfig,
	overrides *config.Overrides,
) *ingestUC.Service {
	fetcher := feed.NewFetcher(newFeedHTTPClient())

	scraperCfg := scraper.LoadConfigFromEnv()
	if overrides.Scraper.PrimarySelector != "" {
		scraperCfg.PrimarySelector = overrides.Scraper.PrimarySelector
	}
	if len(overrides.Scraper.FallbackSelectors) > 0 {
		scraperCfg.FallbackSelectors = overrides.Scraper.FallbackSelectors
	}
	articleScraper := scraper.NewArticleScraper(scraperCfg)

	var enrich ingestUC.Enricher
	if svc, err := enricher.NewServiceFromEnv(); err != nil {
		logger.Warn("enrichment disabled", slog.Any("error", err))
	} else {
		enrich = svc
	}

	resolver := identity.NewResolver(cfg.SourceName, cfg.LinkParam)

	return ingestUC.NewService(repo, fetcher, articleScraper, enrich, resolver, ingestUC.Config{
		FeedURL:           cfg.FeedURL,
		ScrapeParallelism: cfg.ScrapeParallelism,
	})
}

func newFeedHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// applyMiddleware wraps the handler with the middleware chain, outermost
// first: tracing, request ID, rate limit, recovery, logging, input caps,
// per-request timeout.
func applyMiddleware(logger *slog.Logger, cfg config.AppConfig, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	chain := handler
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM, then
// shuts down gracefully.
func runServer(logger *slog.Logger, cfg config.AppConfig, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("feed_url", cfg.FeedURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
