// Package worker provides the scheduling infrastructure shared by the
// background jobs: configuration loading, job metrics, and the health
// endpoint the orchestrator probes.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"easy-news/internal/pkg/config"
)

// WorkerConfig controls the background job scheduler. Ingestion pulls the
// feed and enriches new items; push delivers the oldest unsent item to the
// notification topic, gated to daytime hours.
//
// All fields load from environment variables with fail-open fallback, so
// the worker starts on defaults even when a variable is malformed.
type WorkerConfig struct {
	// IngestSchedule is the cron expression for feed ingestion runs.
	// Default: "0 * * * *" (hourly).
	IngestSchedule string

	// PushSchedule is the cron expression for push dispatch attempts.
	// Default: "0 */3 * * *" (every three hours). The dispatcher applies
	// its own delivery window on top of this, so off-hour firings are
	// cheap no-ops.
	PushSchedule string

	// Timezone is the IANA timezone the cron scheduler runs in.
	// Default: "Asia/Seoul".
	Timezone string

	// IngestTimeout bounds a single ingestion run. Default: 10 minutes.
	IngestTimeout time.Duration

	// PushTimeout bounds a single push dispatch. Default: 1 minute.
	PushTimeout time.Duration

	// HealthPort is the port for liveness/readiness probes. Default: 9091.
	HealthPort int
}

// DefaultConfig returns production defaults: hourly ingestion and
// push dispatch every three hours, scheduled in Korean local time.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		IngestSchedule: "0 * * * *",
		PushSchedule:   "0 */3 * * *",
		Timezone:       "Asia/Seoul",
		IngestTimeout:  10 * time.Minute,
		PushTimeout:    time.Minute,
		HealthPort:     9091,
	}
}

// Validate checks every field, collecting all failures into one error.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.IngestSchedule); err != nil {
		errs = append(errs, fmt.Errorf("ingest schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.PushSchedule); err != nil {
		errs = append(errs, fmt.Errorf("push schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.IngestTimeout, time.Minute, 4*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("ingest timeout: %w", err))
	}
	if err := config.ValidateDuration(c.PushTimeout, time.Second, time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("push timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration with fail-open
// fallback. A field that fails validation keeps its default, logs a
// warning, and bumps the fallback metrics; the function never errors.
//
// Environment variables:
//   - INGEST_SCHEDULE: cron expression (default "0 * * * *")
//   - PUSH_SCHEDULE: cron expression (default "0 */3 * * *")
//   - WORKER_TIMEZONE: IANA name (default "Asia/Seoul")
//   - INGEST_TIMEOUT: duration, 1m-4h (default "10m")
//   - PUSH_TIMEOUT: duration, 1s-1h (default "1m")
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, result config.ConfigLoadResult, set func(config.ConfigLoadResult)) {
		set(result)
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	apply("ingest_schedule",
		config.LoadEnvWithFallback("INGEST_SCHEDULE", cfg.IngestSchedule, config.ValidateCronSchedule),
		func(r config.ConfigLoadResult) { cfg.IngestSchedule = r.Value.(string) })

	apply("push_schedule",
		config.LoadEnvWithFallback("PUSH_SCHEDULE", cfg.PushSchedule, config.ValidateCronSchedule),
		func(r config.ConfigLoadResult) { cfg.PushSchedule = r.Value.(string) })

	apply("timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone),
		func(r config.ConfigLoadResult) { cfg.Timezone = r.Value.(string) })

	apply("ingest_timeout",
		config.LoadEnvDuration("INGEST_TIMEOUT", cfg.IngestTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, time.Minute, 4*time.Hour)
		}),
		func(r config.ConfigLoadResult) { cfg.IngestTimeout = r.Value.(time.Duration) })

	apply("push_timeout",
		config.LoadEnvDuration("PUSH_TIMEOUT", cfg.PushTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, time.Second, time.Hour)
		}),
		func(r config.ConfigLoadResult) { cfg.PushTimeout = r.Value.(time.Duration) })

	apply("health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		}),
		func(r config.ConfigLoadResult) { cfg.HealthPort = r.Value.(int) })

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
