package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a pagination request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, mode Mode, params Params) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"mode", string(mode),
		"limit", params.Limit,
		"has_cursor", params.Cursor != "")
}

// LogResponse logs a pagination response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, mode Mode, returnedCount int, hasMore bool, duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"mode", string(mode),
		"returned_count", returnedCount,
		"has_more", hasMore,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, requestID string, mode Mode, err error, errorType string) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"mode", string(mode),
		"error", err.Error(),
		"error_type", errorType)
}
