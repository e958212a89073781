// Package postgres provides the PostgreSQL implementation of the repository
// interfaces. The news collection is a single table keyed by stable ID with
// JSONB entity annotations.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"easy-news/internal/domain/entity"
	"easy-news/internal/repository"
)

// newsColumns is the canonical column list scanned into entity.NewsItem.
const newsColumns = `stable_id, title, link, description, category, media_url,
summary, summary3lines, easy_summary, entities, view_count, sent, sent_at,
published_at, created_at, updated_at`

type NewsRepo struct{ db *sql.DB }

// NewNewsRepo creates a new PostgreSQL-backed news repository.
func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

// scanNewsItem scans one row into a NewsItem, decoding the JSONB entity list.
func scanNewsItem(scan func(dest ...any) error) (*entity.NewsItem, error) {
	var (
		item         entity.NewsItem
		entitiesJSON []byte
		sentAt       sql.NullTime
	)
	err := scan(
		&item.StableID, &item.Title, &item.Link, &item.Description,
		&item.Category, &item.MediaURL, &item.Summary, &item.Summary3Lines,
		&item.EasySummary, &entitiesJSON, &item.ViewCount, &item.Sent,
		&sentAt, &item.PublishedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		item.SentAt = &t
	}
	if len(entitiesJSON) > 0 {
		if err := json.Unmarshal(entitiesJSON, &item.Entities); err != nil {
			return nil, fmt.Errorf("decode entities: %w", err)
		}
	}
	return &item, nil
}

func (repo *NewsRepo) Get(ctx context.Context, stableID string) (*entity.NewsItem, error) {
	query := `
SELECT ` + newsColumns + `
FROM news_items
WHERE stable_id = $1
LIMIT 1`
	row := repo.db.QueryRowContext(ctx, query, stableID)
	item, err := scanNewsItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return item, nil
}

// UpsertBatch writes up to entity.MaxBatchItems items inside one transaction
// so the batch either fully applies or fully fails. Merge updates never
// clear populated stored fields and never touch view_count, sent, or sent_at.
func (repo *NewsRepo) UpsertBatch(ctx context.Context, items []*entity.NewsItem) (*entity.SaveResult, error) {
	if len(items) > entity.MaxBatchItems {
		items = items[:entity.MaxBatchItems]
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("UpsertBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &entity.SaveResult{TotalCount: len(items)}
	now := time.Now().UTC()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("UpsertBatch: %w", err)
		}

		entitiesJSON, err := marshalEntities(item.Entities)
		if err != nil {
			return nil, fmt.Errorf("UpsertBatch: %w", err)
		}

		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM news_items WHERE stable_id = $1)`,
			item.StableID,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("UpsertBatch: exists check: %w", err)
		}

		if exists {
			_, err = tx.ExecContext(ctx, `
UPDATE news_items SET
    title         = $2,
    link          = $3,
    description   = CASE WHEN $4  <> '' THEN $4 ELSE description END,
    category      = CASE WHEN $5  <> '' THEN $5 ELSE category END,
    media_url     = CASE WHEN $6  <> '' THEN $6 ELSE media_url END,
    summary       = CASE WHEN $7  <> '' THEN $7 ELSE summary END,
    summary3lines = CASE WHEN $8  <> '' THEN $8 ELSE summary3lines END,
    easy_summary  = CASE WHEN $9  <> '' THEN $9 ELSE easy_summary END,
    entities      = CASE WHEN $10::jsonb <> '[]'::jsonb THEN $10::jsonb ELSE entities END,
    published_at  = $11,
    updated_at    = $12
WHERE stable_id = $1`,
				item.StableID, item.Title, item.Link, item.Description,
				item.Category, item.MediaURL, item.Summary, item.Summary3Lines,
				item.EasySummary, entitiesJSON, item.PublishedAt, now)
			if err != nil {
				return nil, fmt.Errorf("UpsertBatch: update %s: %w", item.StableID, err)
			}
			result.UpdatedCount++
		} else {
			_, err = tx.ExecContext(ctx, `
INSERT INTO news_items (
    stable_id, title, link, description, category, media_url,
    summary, summary3lines, easy_summary, entities,
    view_count, sent, published_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, 0, FALSE, $11, $12, $12)`,
				item.StableID, item.Title, item.Link, item.Description,
				item.Category, item.MediaURL, item.Summary, item.Summary3Lines,
				item.EasySummary, entitiesJSON, item.PublishedAt, now)
			if err != nil {
				return nil, fmt.Errorf("UpsertBatch: insert %s: %w", item.StableID, err)
			}
			result.SavedCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("UpsertBatch: commit: %w", err)
	}
	return result, nil
}

func (repo *NewsRepo) List(ctx context.Context, q repository.NewsQuery) ([]*entity.NewsItem, error) {
	var (
		where []string
		args  []any
	)

	if q.Category != nil {
		op := "="
		if q.Category.Exclude {
			op = "<>"
		}
		args = append(args, q.Category.Name)
		where = append(where, fmt.Sprintf("category %s $%d", op, len(args)))
	}

	var orderBy string
	switch q.Sort {
	case repository.SortByViews:
		orderBy = "view_count DESC"
		if q.After != nil {
			args = append(args, *q.After)
			where = append(where, fmt.Sprintf("view_count < $%d", len(args)))
		}
	case repository.SortByDate:
		orderBy = "published_at DESC"
		if q.After != nil {
			args = append(args, *q.After)
			where = append(where, fmt.Sprintf("published_at < to_timestamp($%d::double precision / 1000.0)", len(args)))
		}
	default:
		return nil, fmt.Errorf("List: unsupported sort key %q", q.Sort)
	}

	query := `SELECT ` + newsColumns + ` FROM news_items`
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	args = append(args, q.Limit+1)
	query += fmt.Sprintf("\nORDER BY %s\nLIMIT $%d", orderBy, len(args))

	return repo.queryItems(ctx, "List", query, args...)
}

func (repo *NewsRepo) Count(ctx context.Context, category *repository.CategoryFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM news_items`
	var args []any
	if category != nil {
		op := "="
		if category.Exclude {
			op = "<>"
		}
		query += fmt.Sprintf(" WHERE category %s $1", op)
		args = append(args, category.Name)
	}

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// IncrementViewCount relies on the database-side increment so concurrent
// calls compose: N concurrent increments always add exactly N.
func (repo *NewsRepo) IncrementViewCount(ctx context.Context, stableID string) error {
	const query = `
UPDATE news_items
SET view_count = view_count + 1, updated_at = now()
WHERE stable_id = $1`
	res, err := repo.db.ExecContext(ctx, query, stableID)
	if err != nil {
		return fmt.Errorf("IncrementViewCount: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("IncrementViewCount: rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *NewsRepo) Popular(ctx context.Context, limit int, since *time.Time) ([]*entity.NewsItem, error) {
	query := `SELECT ` + newsColumns + ` FROM news_items`
	var args []any
	if since != nil {
		args = append(args, *since)
		query += "\nWHERE published_at >= $1"
	}
	args = append(args, limit)
	query += fmt.Sprintf("\nORDER BY view_count DESC\nLIMIT $%d", len(args))

	return repo.queryItems(ctx, "Popular", query, args...)
}

func (repo *NewsRepo) NextUnsent(ctx context.Context) (*entity.NewsItem, error) {
	query := `
SELECT ` + newsColumns + `
FROM news_items
WHERE sent = FALSE AND easy_summary <> ''
ORDER BY published_at DESC
LIMIT 1`
	row := repo.db.QueryRowContext(ctx, query)
	item, err := scanNewsItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("NextUnsent: %w", err)
	}
	return item, nil
}

func (repo *NewsRepo) MarkSent(ctx context.Context, stableID string, at time.Time) error {
	const query = `
UPDATE news_items
SET sent = TRUE, sent_at = $2, updated_at = now()
WHERE stable_id = $1`
	res, err := repo.db.ExecContext(ctx, query, stableID, at)
	if err != nil {
		return fmt.Errorf("MarkSent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("MarkSent: rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// queryItems runs a multi-row query and scans the results.
func (repo *NewsRepo) queryItems(ctx context.Context, op, query string, args ...any) ([]*entity.NewsItem, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.NewsItem, 0, entity.MaxBatchItems)
	for rows.Next() {
		item, err := scanNewsItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return items, nil
}

// marshalEntities encodes the entity list as JSON, normalizing nil to the
// empty array so the merge comparison against '[]' behaves.
func marshalEntities(entities []entity.Entity) ([]byte, error) {
	if entities == nil {
		entities = []entity.Entity{}
	}
	data, err := json.Marshal(entities)
	if err != nil {
		return nil, fmt.Errorf("encode entities: %w", err)
	}
	return data, nil
}
