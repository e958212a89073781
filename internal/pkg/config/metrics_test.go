package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigMetrics(t *testing.T) {
	// Unique component name: promauto registration is global per process.
	m := NewConfigMetrics("configtest")

	assert.NotPanics(t, func() {
		m.RecordLoadTimestamp()
		m.RecordValidationError("ingest_schedule")
		m.RecordFallback("ingest_schedule")
		m.SetFallbackActive(true)
		m.SetFallbackActive(false)
	})
}
