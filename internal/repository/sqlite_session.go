package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/frontdesk/internal/db"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo over the chat_logs table.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `session_id, log, summary, name, phone, keyword_id, template, created_at, updated_at`

func (r *SQLiteSessionRepo) Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM chat_logs WHERE session_id = ?`, sessionID)
	rec, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %q: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return rec, nil
}

func (r *SQLiteSessionRepo) Upsert(ctx context.Context, sessionID string, f domain.SessionFields) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO chat_logs
		(session_id, log, summary, name, phone, keyword_id, template, created_at, updated_at)
		VALUES (?, '', ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			summary    = excluded.summary,
			name       = excluded.name,
			phone      = excluded.phone,
			keyword_id = excluded.keyword_id,
			template   = excluded.template,
			updated_at = excluded.updated_at`,
		sessionID,
		f.Summary,
		nullableStrToValue(f.Name),
		nullableStrToValue(f.Phone),
		nullableIntToValue(f.MatchedTopicID),
		nullableStrToValue(f.Template),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting session %q: %w", sessionID, err)
	}
	return nil
}

func (r *SQLiteSessionRepo) AppendLog(ctx context.Context, sessionID, entry string) error {
	now := nowUTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO chat_logs
		(session_id, log, summary, created_at, updated_at)
		VALUES (?, ?, '', ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			log = CASE WHEN chat_logs.log = '' THEN excluded.log
			           ELSE chat_logs.log || ? || excluded.log END,
			updated_at = excluded.updated_at`,
		sessionID, entry, now, now, domain.LogSeparator,
	)
	if err != nil {
		return fmt.Errorf("appending log for session %q: %w", sessionID, err)
	}
	return nil
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM chat_logs ORDER BY updated_at DESC, session_id`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.SessionRecord, error) {
	var (
		rec                  domain.SessionRecord
		name, phone, tmpl    sql.NullString
		keywordID            sql.NullInt64
		createdAt, updatedAt sql.NullString
	)
	if err := row.Scan(&rec.SessionID, &rec.Log, &rec.Summary,
		&name, &phone, &keywordID, &tmpl, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	rec.Name = strPtrFromNull(name)
	rec.Phone = strPtrFromNull(phone)
	rec.MatchedTopicID = intPtrFromNull(keywordID)
	rec.Template = strPtrFromNull(tmpl)
	rec.CreatedAt = parseNullableTime(createdAt, time.RFC3339)
	rec.UpdatedAt = parseNullableTime(updatedAt, time.RFC3339)
	return &rec, nil
}
