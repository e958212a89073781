// Package notifier provides abstraction for sending push notifications about
// news items. It defines the Notifier interface which allows different push
// mechanisms (FCM topics, no-op for development) to be used interchangeably
// through dependency injection.
package notifier

import (
	"context"

	"easy-news/internal/domain/entity"
)

// Notifier is an interface for sending news push notifications.
// Implementations should handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyNews sends one push notification for the given news item.
	//
	// Implementations should:
	//   - Apply rate limiting to prevent API abuse
	//   - Retry transient failures with exponential backoff
	//   - Respect context cancellation
	//
	// Returns a non-nil error if the notification failed after all retry
	// attempts; callers must then leave the item's sent-flag untouched.
	NotifyNews(ctx context.Context, item *entity.NewsItem) error
}
