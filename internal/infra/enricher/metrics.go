package enricher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// batchRequestsTotal counts enrichment model calls.
	// Labels: provider (claude, openai), aspect (summaries, entities), outcome (success, failure)
	batchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_enrichment_requests_total",
			Help: "Total number of batch enrichment model calls",
		},
		[]string{"provider", "aspect", "outcome"},
	)

	// batchDurationSeconds tracks model call duration per aspect.
	batchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_enrichment_duration_seconds",
			Help:    "Duration of batch enrichment model calls",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 60, 120},
		},
		[]string{"provider", "aspect"},
	)

	// parseGapsTotal counts articles that came back without usable data in
	// an otherwise successful response.
	parseGapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_enrichment_parse_gaps_total",
			Help: "Articles missing from parsed enrichment responses",
		},
		[]string{"aspect"},
	)
)

// recordBatchRequest records one model call with its outcome and duration.
func recordBatchRequest(provider, aspect string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	batchRequestsTotal.WithLabelValues(provider, aspect, outcome).Inc()
	batchDurationSeconds.WithLabelValues(provider, aspect).Observe(duration.Seconds())
}

// recordParseGap records articles the model response failed to cover.
func recordParseGap(aspect string, count int) {
	parseGapsTotal.WithLabelValues(aspect).Add(float64(count))
}
