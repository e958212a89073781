package pagination

// Response is a generic cursor-paginated response wrapper.
// T is the type of data items (e.g., NewsItemDTO).
type Response[T any] struct {
	Data       []T    `json:"data"`                  // Items for the current page
	NextCursor string `json:"next_cursor,omitempty"` // Cursor for the next page, empty on the last page
	HasMore    bool   `json:"has_more"`              // Whether more items exist after this page
	Total      int64  `json:"total"`                 // Total items matching the query
}

// NewResponse creates a cursor-paginated response.
func NewResponse[T any](data []T, nextCursor string, hasMore bool, total int64) Response[T] {
	return Response[T]{
		Data:       data,
		NextCursor: nextCursor,
		HasMore:    hasMore,
		Total:      total,
	}
}

// TrimProbe resolves the limit+1 probe pattern: repositories fetch one row
// beyond the requested limit so the extra row reveals whether a next page
// exists without a second query. Returns the page trimmed to limit and
// whether more rows remain.
func TrimProbe[T any](rows []T, limit int) ([]T, bool) {
	if limit > 0 && len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
