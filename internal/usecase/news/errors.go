// Package news provides read-side use cases for the news collection:
// cursor-paginated listing, single-item reads, view counting, and
// popularity rankings.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrNewsNotFound indicates that the requested news item was not found.
	ErrNewsNotFound = errors.New("news item not found")

	// ErrInvalidNewsID indicates that the provided news ID is blank.
	ErrInvalidNewsID = errors.New("invalid news ID")

	// ErrInvalidCursor indicates that a pagination cursor could not be
	// decoded, or was issued for a different sort order.
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrInvalidSortKey indicates an unsupported sort parameter.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrInvalidPeriod indicates an unsupported popularity period.
	ErrInvalidPeriod = errors.New("invalid popularity period")
)
