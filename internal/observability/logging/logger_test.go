package logging

import (
	"context"
	"log/slog"
	"testing"

	"easy-news/internal/handler/http/requestid"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv()=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	logger := NewLogger()

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestNewTextLogger_DefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewTextLogger()

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled by default")
	}
}

func TestWithRequestID(t *testing.T) {
	base := slog.Default()

	t.Run("no request ID returns the logger unchanged", func(t *testing.T) {
		if got := WithRequestID(context.Background(), base); got != base {
			t.Error("expected the same logger when the context has no request ID")
		}
	})

	t.Run("request ID produces a derived logger", func(t *testing.T) {
		ctx := requestid.WithRequestID(context.Background(), "req-42")
		if got := WithRequestID(ctx, base); got == base {
			t.Error("expected a logger with the request_id attribute attached")
		}
	})
}
