package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is RFC3339 with fixed-width microseconds. Every stored
// timestamp uses it so that string comparison orders them correctly;
// time.RFC3339 still parses it.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTimestamps(db); err != nil {
		return fmt.Errorf("backfilling chat_logs timestamps: %w", err)
	}
	return nil
}

// migrateBackfillTimestamps stamps rows written before created_at/updated_at
// existed so that listings can sort them.
func migrateBackfillTimestamps(db *sql.DB) error {
	ctx := context.Background()
	now := time.Now().UTC().Format(TimestampLayout)

	if _, err := db.ExecContext(ctx,
		`UPDATE chat_logs SET created_at = ? WHERE created_at IS NULL OR created_at = ''`, now); err != nil {
		return fmt.Errorf("backfilling created_at: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`UPDATE chat_logs SET updated_at = created_at WHERE updated_at IS NULL OR updated_at = ''`); err != nil {
		return fmt.Errorf("backfilling updated_at: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS extracted_data (
		id       INTEGER PRIMARY KEY,
		keywords TEXT NOT NULL,
		content  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS chat_logs (
		session_id TEXT PRIMARY KEY,
		log        TEXT NOT NULL DEFAULT '',
		summary    TEXT NOT NULL DEFAULT ''
	)`,

	// Per-session caller fields, added after the first release.
	`ALTER TABLE chat_logs ADD COLUMN name TEXT`,
	`ALTER TABLE chat_logs ADD COLUMN phone TEXT`,
	`ALTER TABLE chat_logs ADD COLUMN keyword_id INTEGER`,
	`ALTER TABLE chat_logs ADD COLUMN template TEXT`,
	`ALTER TABLE chat_logs ADD COLUMN created_at TEXT`,
	`ALTER TABLE chat_logs ADD COLUMN updated_at TEXT`,

	`CREATE INDEX IF NOT EXISTS idx_chat_logs_updated ON chat_logs(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_logs_name ON chat_logs(name)`,
	// Model-extracted lead details, keyed to the session version they came from.
	`CREATE TABLE IF NOT EXISTS lead_details (
		session_id         TEXT PRIMARY KEY,
		name               TEXT NOT NULL DEFAULT '',
		phone              TEXT NOT NULL DEFAULT '',
		product            TEXT NOT NULL DEFAULT '',
		session_updated_at TEXT NOT NULL,
		extracted_at       TEXT NOT NULL
	)`,
}
