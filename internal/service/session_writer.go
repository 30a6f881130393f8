package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/repository"
)

// sessionWriter persists one turn as two independent writes. A failure
// between them leaves fields and log out of step; nothing repairs that.
type sessionWriter struct {
	sessions repository.SessionRepo
}

func (w sessionWriter) Persist(ctx context.Context, sessionID string, fields domain.SessionFields, entry string) error {
	if err := w.sessions.Upsert(ctx, sessionID, fields); err != nil {
		return fmt.Errorf("writing session fields: %w", err)
	}
	if err := w.sessions.AppendLog(ctx, sessionID, entry); err != nil {
		return fmt.Errorf("appending session log: %w", err)
	}
	return nil
}
