package db

import (
	"database/sql"
)

// MigrateUp creates the news collection schema and its indexes.
func MigrateUp(database *sql.DB) error {
	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS news_items (
    stable_id     TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    link          TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    category      TEXT NOT NULL DEFAULT '',
    media_url     TEXT NOT NULL DEFAULT '',
    summary       TEXT NOT NULL DEFAULT '',
    summary3lines TEXT NOT NULL DEFAULT '',
    easy_summary  TEXT NOT NULL DEFAULT '',
    entities      JSONB NOT NULL DEFAULT '[]',
    view_count    BIGINT NOT NULL DEFAULT 0,
    sent          BOOLEAN NOT NULL DEFAULT FALSE,
    sent_at       TIMESTAMPTZ,
    published_at  TIMESTAMPTZ NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// date-sorted pagination
		`CREATE INDEX IF NOT EXISTS idx_news_items_published_at ON news_items(published_at DESC)`,
		// view-sorted pagination and popular queries
		`CREATE INDEX IF NOT EXISTS idx_news_items_view_count ON news_items(view_count DESC)`,
		// category filter (exact match and complement)
		`CREATE INDEX IF NOT EXISTS idx_news_items_category ON news_items(category)`,
		// notification candidate lookup only touches unsent rows
		`CREATE INDEX IF NOT EXISTS idx_news_items_unsent ON news_items(published_at DESC) WHERE sent = FALSE`,
	}
	for _, idx := range indexes {
		if _, err := database.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the schema. Use with caution: this deletes all data.
func MigrateDown(database *sql.DB) error {
	drops := []string{
		`DROP INDEX IF EXISTS idx_news_items_unsent`,
		`DROP INDEX IF EXISTS idx_news_items_category`,
		`DROP INDEX IF EXISTS idx_news_items_view_count`,
		`DROP INDEX IF EXISTS idx_news_items_published_at`,
		`DROP TABLE IF EXISTS news_items`,
	}
	for _, stmt := range drops {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
