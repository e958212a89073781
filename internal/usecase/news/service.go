package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"easy-news/internal/common/pagination"
	"easy-news/internal/domain/entity"
	"easy-news/internal/observability/metrics"
	"easy-news/internal/repository"
)

// Service provides news read use cases.
type Service struct {
	Repo   repository.NewsRepository
	Config pagination.Config
}

// NewService creates a news Service with the given repository and
// pagination configuration.
func NewService(repo repository.NewsRepository, config pagination.Config) *Service {
	return &Service{Repo: repo, Config: config}
}

// ListInput describes one paginated list request.
type ListInput struct {
	// Limit is the requested page size. Zero means the configured default.
	Limit int

	// Cursor is the opaque cursor returned by a previous page, or empty
	// for the first page.
	Cursor string

	// Sort selects the ordering. Empty means date ordering.
	Sort string

	// Category optionally restricts results to one category, or excludes
	// one when Exclude is set.
	Category *repository.CategoryFilter
}

// sortModes maps sort keys to the cursor encoding they use.
var sortModes = map[repository.SortKey]pagination.Mode{
	repository.SortByDate:  pagination.ModeDate,
	repository.SortByViews: pagination.ModeViews,
}

// List returns one page of news items ordered by the requested sort key.
// Cursors are only valid for the sort order they were issued under;
// presenting a cursor across sort orders returns ErrInvalidCursor.
func (s *Service) List(ctx context.Context, in ListInput) (*pagination.Response[*entity.NewsItem], error) {
	sort := repository.SortByDate
	if in.Sort != "" {
		sort = repository.SortKey(strings.ToLower(in.Sort))
		if !sort.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, in.Sort)
		}
	}
	mode := sortModes[sort]

	limit := in.Limit
	if limit <= 0 {
		limit = s.Config.DefaultLimit
	}
	if limit > s.Config.MaxLimit {
		limit = s.Config.MaxLimit
	}

	var after *int64
	if in.Cursor != "" {
		cursor, err := pagination.Decode(in.Cursor)
		if err != nil {
			pagination.RecordError("cursor")
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		if err := cursor.CheckMode(mode); err != nil {
			pagination.RecordError("cursor")
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		after = &cursor.Value
	}

	rows, err := s.Repo.List(ctx, repository.NewsQuery{
		Limit:    limit,
		After:    after,
		Sort:     sort,
		Category: in.Category,
	})
	if err != nil {
		pagination.RecordError("database")
		return nil, fmt.Errorf("list news: %w", err)
	}

	page, hasMore := pagination.TrimProbe(rows, limit)

	nextCursor := ""
	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		switch sort {
		case repository.SortByViews:
			nextCursor = pagination.ViewsCursor(last.ViewCount).Encode()
		default:
			nextCursor = pagination.DateCursor(last.PublishedAt).Encode()
		}
	}

	total, err := s.Repo.Count(ctx, in.Category)
	if err != nil {
		pagination.RecordError("database")
		return nil, fmt.Errorf("count news: %w", err)
	}
	pagination.UpdateTotalCount(total)

	resp := pagination.NewResponse(page, nextCursor, hasMore, total)
	return &resp, nil
}

// Get retrieves a single news item by stable ID.
// Returns ErrInvalidNewsID for a blank ID and ErrNewsNotFound when the
// item does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.NewsItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidNewsID
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if item == nil {
		return nil, ErrNewsNotFound
	}
	return item, nil
}

// GetAndCountView retrieves a news item and registers one view for it.
// The returned item reflects the incremented count.
func (s *Service) GetAndCountView(ctx context.Context, id string) (*entity.NewsItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("increment view count: %w", err)
	}
	metrics.RecordViewIncrement()

	item.ViewCount++
	return item, nil
}

// IncrementView registers one view for a news item without reading it.
func (s *Service) IncrementView(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidNewsID
	}

	if err := s.Repo.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("increment view count: %w", err)
	}
	metrics.RecordViewIncrement()
	return nil
}

// popularPeriods maps period names to their lookback duration. The zero
// duration means no time restriction.
var popularPeriods = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"all": 0,
}

// Popular returns the most viewed items within the given period.
// Supported periods are "24h", "7d", "30d" and "all"; empty means "24h".
func (s *Service) Popular(ctx context.Context, period string, limit int) ([]*entity.NewsItem, error) {
	if period == "" {
		period = "24h"
	}
	lookback, ok := popularPeriods[strings.ToLower(period)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	if limit <= 0 {
		limit = s.Config.DefaultLimit
	}
	if limit > s.Config.MaxLimit {
		limit = s.Config.MaxLimit
	}

	var since *time.Time
	if lookback > 0 {
		t := time.Now().Add(-lookback)
		since = &t
	}

	items, err := s.Repo.Popular(ctx, limit, since)
	if err != nil {
		return nil, fmt.Errorf("list popular news: %w", err)
	}
	return items, nil
}
