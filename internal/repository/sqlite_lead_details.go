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

// SQLiteLeadDetailsRepo implements LeadDetailsRepo over the lead_details table.
type SQLiteLeadDetailsRepo struct {
	db db.DBTX
}

func NewSQLiteLeadDetailsRepo(conn db.DBTX) *SQLiteLeadDetailsRepo {
	return &SQLiteLeadDetailsRepo{db: conn}
}

func (r *SQLiteLeadDetailsRepo) Get(ctx context.Context, sessionID string) (*domain.LeadDetails, error) {
	var (
		d                       domain.LeadDetails
		sessionUpdated, extract sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT session_id, name, phone, product, session_updated_at, extracted_at
		FROM lead_details WHERE session_id = ?`, sessionID).
		Scan(&d.SessionID, &d.Name, &d.Phone, &d.Interest, &sessionUpdated, &extract)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead details %q: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning lead details: %w", err)
	}
	d.SessionUpdatedAt = parseNullableTime(sessionUpdated, time.RFC3339)
	d.ExtractedAt = parseNullableTime(extract, time.RFC3339)
	return &d, nil
}

func (r *SQLiteLeadDetailsRepo) Upsert(ctx context.Context, d domain.LeadDetails) error {
	extractedAt := nowUTC()
	if !d.ExtractedAt.IsZero() {
		extractedAt = formatTime(d.ExtractedAt)
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO lead_details
		(session_id, name, phone, product, session_updated_at, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			name               = excluded.name,
			phone              = excluded.phone,
			product            = excluded.product,
			session_updated_at = excluded.session_updated_at,
			extracted_at       = excluded.extracted_at`,
		d.SessionID, d.Name, d.Phone, d.Interest, formatTime(d.SessionUpdatedAt), extractedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting lead details %q: %w", d.SessionID, err)
	}
	return nil
}

var _ LeadDetailsRepo = (*SQLiteLeadDetailsRepo)(nil)
