package worker

import (
	"easy-news/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the background job
// scheduler. It embeds the shared configuration metrics and adds per-job
// execution tracking with a job label ("ingest" or "push").
type WorkerMetrics struct {
	*config.ConfigMetrics

	// JobRunsTotal counts scheduled job runs by job and status.
	JobRunsTotal *prometheus.CounterVec

	// JobDuration observes job execution time in seconds per job.
	JobDuration *prometheus.HistogramVec

	// LastSuccessTimestamp is the Unix time of each job's last success.
	LastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics registers and returns the worker metric set. Call once
// per process; duplicate registration panics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total scheduled job runs by job and status",
		}, []string{"job", "status"}),

		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Job execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"job"}),

		LastSuccessTimestamp: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per job",
		}, []string{"job"}),
	}
}

// RecordJobRun counts one run of the named job with status "success" or
// "failure".
func (m *WorkerMetrics) RecordJobRun(job, status string) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
}

// RecordJobDuration observes the execution time of the named job.
func (m *WorkerMetrics) RecordJobDuration(job string, seconds float64) {
	m.JobDuration.WithLabelValues(job).Observe(seconds)
}

// RecordLastSuccess stamps the named job's last successful run at now.
func (m *WorkerMetrics) RecordLastSuccess(job string) {
	m.LastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
}
