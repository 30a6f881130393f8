package repository

import (
	"context"

	"github.com/alexanderramin/frontdesk/internal/domain"
)

// ContentRepo reads and replaces the keyword-indexed content corpus.
type ContentRepo interface {
	List(ctx context.Context) ([]domain.ContentEntry, error)
	GetByID(ctx context.Context, id int) (*domain.ContentEntry, error)
	Upsert(ctx context.Context, e domain.ContentEntry) error
	ReplaceAll(ctx context.Context, entries []domain.ContentEntry) error
}

// SessionRepo stores one row per conversation.
type SessionRepo interface {
	// Get returns ErrNotFound when the session has never been written.
	Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	// Upsert creates the session with an empty log or overwrites its fields.
	Upsert(ctx context.Context, sessionID string, fields domain.SessionFields) error
	// AppendLog adds one entry, joining with domain.LogSeparator.
	AppendLog(ctx context.Context, sessionID, entry string) error
	// List returns every session, most recently updated first.
	List(ctx context.Context) ([]*domain.SessionRecord, error)
}

// LeadDetailsRepo stores model-extracted lead details per session.
type LeadDetailsRepo interface {
	// Get returns ErrNotFound when nothing was extracted for the session.
	Get(ctx context.Context, sessionID string) (*domain.LeadDetails, error)
	Upsert(ctx context.Context, d domain.LeadDetails) error
}
