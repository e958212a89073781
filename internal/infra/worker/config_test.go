package worker

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testMetricsOnce sync.Once
	testMetrics     *WorkerMetrics
)

// Prometheus registration is process-global, so all tests share one set.
func sharedMetrics() *WorkerMetrics {
	testMetricsOnce.Do(func() {
		testMetrics = NewWorkerMetrics()
	})
	return testMetrics
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0 * * * *", cfg.IngestSchedule)
	assert.Equal(t, "0 */3 * * *", cfg.PushSchedule)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.Equal(t, 10*time.Minute, cfg.IngestTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	assert.NoError(t, cfg.Validate())
}

func TestWorkerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkerConfig)
	}{
		{"bad ingest schedule", func(c *WorkerConfig) { c.IngestSchedule = "whenever" }},
		{"bad push schedule", func(c *WorkerConfig) { c.PushSchedule = "* *" }},
		{"bad timezone", func(c *WorkerConfig) { c.Timezone = "Mars/Olympus" }},
		{"ingest timeout too short", func(c *WorkerConfig) { c.IngestTimeout = time.Second }},
		{"privileged health port", func(c *WorkerConfig) { c.HealthPort = 80 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid overrides applied", func(t *testing.T) {
		t.Setenv("INGEST_SCHEDULE", "15 * * * *")
		t.Setenv("WORKER_TIMEZONE", "UTC")
		t.Setenv("INGEST_TIMEOUT", "30m")
		t.Setenv("WORKER_HEALTH_PORT", "9191")

		cfg, err := LoadConfigFromEnv(logger, sharedMetrics())
		require.NoError(t, err)

		assert.Equal(t, "15 * * * *", cfg.IngestSchedule)
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.Equal(t, 30*time.Minute, cfg.IngestTimeout)
		assert.Equal(t, 9191, cfg.HealthPort)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		t.Setenv("INGEST_SCHEDULE", "whenever it feels right")
		t.Setenv("WORKER_TIMEZONE", "Mars/Olympus")
		t.Setenv("PUSH_TIMEOUT", "-3s")

		cfg, err := LoadConfigFromEnv(logger, sharedMetrics())
		require.NoError(t, err)

		defaults := DefaultConfig()
		assert.Equal(t, defaults.IngestSchedule, cfg.IngestSchedule)
		assert.Equal(t, defaults.Timezone, cfg.Timezone)
		assert.Equal(t, defaults.PushTimeout, cfg.PushTimeout)
		assert.NoError(t, cfg.Validate())
	})
}
