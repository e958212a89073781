// Package repository defines the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"
	"time"

	"easy-news/internal/domain/entity"
)

// SortKey selects the ordering space for ranged news queries.
// Each sort key has its own cursor encoding; cursors are not portable
// between sort keys.
type SortKey string

const (
	// SortByDate orders by publication timestamp, newest first.
	// Cursor values are unix-millisecond timestamps.
	SortByDate SortKey = "date"

	// SortByViews orders by view count, highest first.
	// Cursor values are view counts.
	SortByViews SortKey = "views"
)

// IsValid reports whether the sort key is one of the supported orderings.
func (k SortKey) IsValid() bool {
	return k == SortByDate || k == SortByViews
}

// CategoryFilter restricts a query to an exact category match, or to its
// logical complement when Exclude is set ("all except category X").
type CategoryFilter struct {
	Name    string
	Exclude bool
}

// NewsQuery describes one page of a ranged news read.
type NewsQuery struct {
	// Limit is the page size. The implementation fetches Limit+1 rows to
	// detect whether a further page exists.
	Limit int

	// After is the decoded cursor value of the last item on the previous
	// page, in the ordering space of Sort. Nil requests the first page.
	After *int64

	// Sort selects the ordering space.
	Sort SortKey

	// Category optionally restricts results by category.
	Category *CategoryFilter
}

// NewsRepository is the store-access capability injected into the use case
// layer. The document collection is keyed by stable ID.
type NewsRepository interface {
	// Get retrieves one item by stable ID. Returns (nil, nil) if absent.
	Get(ctx context.Context, stableID string) (*entity.NewsItem, error)

	// UpsertBatch writes up to entity.MaxBatchItems items in a single
	// atomic batch. Existing documents (same stable ID) are merged:
	// populated incoming fields replace stored ones, blank incoming fields
	// leave stored values untouched, and view count and sent-flag are
	// never reset. New documents are created with both timestamps stamped.
	UpsertBatch(ctx context.Context, items []*entity.NewsItem) (*entity.SaveResult, error)

	// List returns up to q.Limit+1 items ordered by q.Sort descending,
	// starting strictly after the cursor value when q.After is set.
	List(ctx context.Context, q NewsQuery) ([]*entity.NewsItem, error)

	// Count returns the total number of items matching the category
	// filter. It is independent of pagination and may be served with
	// weaker consistency than a page read.
	Count(ctx context.Context, category *CategoryFilter) (int64, error)

	// IncrementViewCount atomically increments an item's view count.
	// Returns entity.ErrNotFound if the item does not exist.
	IncrementViewCount(ctx context.Context, stableID string) error

	// Popular returns up to limit items ordered by view count descending,
	// optionally restricted to items published at or after since.
	Popular(ctx context.Context, limit int, since *time.Time) ([]*entity.NewsItem, error)

	// NextUnsent returns the most recently published item that has not
	// been dispatched as a notification and carries a non-empty
	// simplified-language summary. Returns (nil, nil) when no candidate
	// qualifies.
	NextUnsent(ctx context.Context) (*entity.NewsItem, error)

	// MarkSent flips the item's sent-flag to true and stamps the sent-at
	// time. The transition is one-way; callers never unset it.
	MarkSent(ctx context.Context, stableID string, at time.Time) error
}
