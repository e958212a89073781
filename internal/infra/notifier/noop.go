package notifier

import (
	"context"
	"log/slog"

	"easy-news/internal/domain/entity"
)

// NoOpNotifier discards notifications. Used when push delivery is not
// configured so the dispatch gate can run unchanged.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a notifier that does nothing.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyNews logs the skipped item at debug level and returns nil.
func (n *NoOpNotifier) NotifyNews(_ context.Context, item *entity.NewsItem) error {
	slog.Debug("notification skipped (no-op notifier)",
		slog.String("news_id", item.StableID))
	return nil
}
