package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"easy-news/internal/config"
	"easy-news/internal/handler/http/respond"
	pgRepo "easy-news/internal/infra/adapter/persistence/postgres"
	"easy-news/internal/infra/db"
	"easy-news/internal/infra/enricher"
	"easy-news/internal/infra/feed"
	"easy-news/internal/infra/notifier"
	"easy-news/internal/infra/scraper"
	workerPkg "easy-news/internal/infra/worker"
	"easy-news/internal/observability/logging"
	"easy-news/internal/repository"
	ingestUC "easy-news/internal/usecase/ingest"
	pushUC "easy-news/internal/usecase/push"
	"easy-news/internal/utils/identity"
)

func main() {
	logger := initLogger()
	appCfg := config.LoadAppConfig()

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("ingest_schedule", workerConfig.IngestSchedule),
		slog.String("push_schedule", workerConfig.PushSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("ingest_timeout", workerConfig.IngestTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	repo := pgRepo.NewNewsRepo(database)
	ingestSvc := setupIngestService(logger, repo, appCfg, overrides)
	pushSvc := setupPushService(logger, repo, overrides)

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	runScheduler(ctx, logger, ingestSvc, pushSvc, workerConfig, workerMetrics, healthServer)
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the connection pool and waits for the schema. The API
// server owns migrations; the worker just polls until they have run.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()

	const probe = "SELECT 1 FROM news_items LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return database
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}

	logger.Error("migrations did not complete in time")
	os.Exit(1)
	return nil
}

// setupIngestService builds the feed ingestion pipeline.
func setupIngestService(
	logger *slog.Logger,
	repo repository.NewsRepository,
	appCfg config.AppConfig,
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

	resolver := identity.NewResolver(appCfg.SourceName, appCfg.LinkParam)

	return ingestUC.NewService(repo, fetcher, articleScraper, enrich, resolver, ingestUC.Config{
		FeedURL:           appCfg.FeedURL,
		ScrapeParallelism: appCfg.ScrapeParallelism,
	})
}

// setupPushService builds the notification dispatcher. Without FCM
// credentials it degrades to a no-op notifier that only logs.
func setupPushService(
	logger *slog.Logger,
	repo repository.NewsRepository,
	overrides *config.Overrides,
) *pushUC.Service {
	pushCfg := pushUC.DefaultConfig()
	if overrides.Push.WindowStartHour != nil {
		pushCfg.WindowStartHour = *overrides.Push.WindowStartHour
	}
	if overrides.Push.WindowEndHour != nil {
		pushCfg.WindowEndHour = *overrides.Push.WindowEndHour
	}
	if overrides.Push.Timezone != "" {
		if loc, err := time.LoadLocation(overrides.Push.Timezone); err != nil {
			logger.Warn("invalid push timezone override, keeping default",
				slog.String("timezone", overrides.Push.Timezone))
		} else {
			pushCfg.Location = loc
		}
	}

	fcmCfg := notifier.LoadFCMConfigFromEnv()
	var notify pushUC.Notifier
	if fcmCfg.Enabled {
		notify = notifier.NewFCMNotifier(fcmCfg)
		logger.Info("FCM notifier initialized", slog.String("topic", fcmCfg.Topic))
	} else {
		notify = notifier.NewNoOpNotifier()
		logger.Info("FCM disabled, notifications will be logged only")
	}

	return pushUC.NewService(repo, notify, pushCfg)
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

// runScheduler registers the cron jobs and blocks until SIGINT/SIGTERM.
func runScheduler(
	ctx context.Context,
	logger *slog.Logger,
	ingestSvc *ingestUC.Service,
	pushSvc *pushUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC",
			slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.IngestSchedule, func() {
		runIngestJob(ctx, logger, ingestSvc, cfg, metrics)
	}); err != nil {
		logger.Error("failed to register ingest job", slog.Any("error", err))
		os.Exit(1)
	}

	if _, err := c.AddFunc(cfg.PushSchedule, func() {
		runPushJob(ctx, logger, pushSvc, cfg, metrics)
	}); err != nil {
		logger.Error("failed to register push job", slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("ingest_schedule", cfg.IngestSchedule),
		slog.String("push_schedule", cfg.PushSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	healthServer.SetReady(false)
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// runIngestJob executes one ingestion run with a timeout.
func runIngestJob(
	ctx context.Context,
	logger *slog.Logger,
	svc *ingestUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
) {
	start := time.Now()
	logger.Info("ingest job started")

	jobCtx, cancel := context.WithTimeout(ctx, cfg.IngestTimeout)
	defer cancel()

	stats, err := svc.Run(jobCtx)
	metrics.RecordJobDuration("ingest", time.Since(start).Seconds())
	if err != nil {
		logger.Error("ingest job failed",
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("ingest", "failure")
		return
	}

	metrics.RecordJobRun("ingest", "success")
	metrics.RecordLastSuccess("ingest")
	logger.Info("ingest job completed",
		slog.Int("feed_items", stats.FeedItems),
		slog.Int("deduplicated", stats.Deduplicated),
		slog.Int64("scraped", stats.Scraped),
		slog.Int("saved", stats.Saved),
		slog.Int("updated", stats.Updated),
		slog.Duration("duration", stats.Duration))
}

// runPushJob executes one push dispatch tick with a timeout.
func runPushJob(
	ctx context.Context,
	logger *slog.Logger,
	svc *pushUC.Service,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
) {
	start := time.Now()

	jobCtx, cancel := context.WithTimeout(ctx, cfg.PushTimeout)
	defer cancel()

	result, err := svc.DispatchNext(jobCtx)
	metrics.RecordJobDuration("push", time.Since(start).Seconds())
	if err != nil {
		logger.Error("push job failed",
			slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("push", "failure")
		return
	}

	metrics.RecordJobRun("push", "success")
	metrics.RecordLastSuccess("push")

	fields := []any{slog.String("outcome", result.Outcome)}
	if result.Item != nil {
		fields = append(fields, slog.String("news_id", result.Item.StableID))
	}
	logger.Info("push job completed", fields...)
}
