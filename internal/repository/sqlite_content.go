package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/frontdesk/internal/db"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

// SQLiteContentRepo implements ContentRepo over the extracted_data table.
type SQLiteContentRepo struct {
	db db.DBTX
}

// NewSQLiteContentRepo creates a ContentRepo. Pass a transaction from
// db.UnitOfWork to make ReplaceAll part of a larger write.
func NewSQLiteContentRepo(conn db.DBTX) *SQLiteContentRepo {
	return &SQLiteContentRepo{db: conn}
}

func (r *SQLiteContentRepo) List(ctx context.Context) ([]domain.ContentEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, keywords, content FROM extracted_data ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	defer rows.Close()

	var entries []domain.ContentEntry
	for rows.Next() {
		var e domain.ContentEntry
		if err := rows.Scan(&e.ID, &e.Keyword, &e.Content); err != nil {
			return nil, fmt.Errorf("scanning content row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content: %w", err)
	}
	return entries, nil
}

func (r *SQLiteContentRepo) GetByID(ctx context.Context, id int) (*domain.ContentEntry, error) {
	var e domain.ContentEntry
	err := r.db.QueryRowContext(ctx, `SELECT id, keywords, content FROM extracted_data WHERE id = ?`, id).
		Scan(&e.ID, &e.Keyword, &e.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning content: %w", err)
	}
	return &e, nil
}

func (r *SQLiteContentRepo) Upsert(ctx context.Context, e domain.ContentEntry) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO extracted_data (id, keywords, content) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET keywords = excluded.keywords, content = excluded.content`,
		e.ID, e.Keyword, e.Content)
	if err != nil {
		return fmt.Errorf("upserting content %d: %w", e.ID, err)
	}
	return nil
}

// ReplaceAll deletes the corpus and inserts entries. It is only atomic when
// the repo was built on a transaction.
func (r *SQLiteContentRepo) ReplaceAll(ctx context.Context, entries []domain.ContentEntry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM extracted_data`); err != nil {
		return fmt.Errorf("clearing content: %w", err)
	}
	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO extracted_data (id, keywords, content) VALUES (?, ?, ?)`,
			e.ID, e.Keyword, e.Content); err != nil {
			return fmt.Errorf("inserting content %d: %w", e.ID, err)
		}
	}
	return nil
}
