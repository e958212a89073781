// Package logging builds the slog loggers used by both binaries and carries
// the request ID from the context into log entries.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"easy-news/internal/handler/http/requestid"
)

// NewLogger returns a JSON logger writing to stdout. The level comes from the
// LOG_LEVEL environment variable (debug, info, warn, error), defaulting to
// info. Source locations are attached at warn level and below so error logs
// can be traced back to their call site.
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})
	return slog.New(handler)
}

// NewTextLogger returns a text-format logger for local development. Same
// level handling as NewLogger.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	})
	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns a logger carrying the request ID from the context,
// or the logger unchanged when no request ID is set.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
