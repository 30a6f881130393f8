package service

import (
	"context"
	"io"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
)

// FrontDeskService answers one caller turn.
type FrontDeskService interface {
	// Submit returns *contract.ValidationError for a bad request. Every other
	// failure is absorbed into a degraded reply and a nil error.
	Submit(ctx context.Context, req contract.QueryRequest) (*contract.QueryResponse, error)
}

// LeadService is the dashboard view over stored sessions.
type LeadService interface {
	List(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error)
	Get(ctx context.Context, sessionID string) (*domain.Lead, error)
	ExportCSV(ctx context.Context, w io.Writer, filter domain.LeadFilter) (int, error)
}

// ContentService manages the topic corpus the extractor matches against.
type ContentService interface {
	List(ctx context.Context) ([]domain.ContentEntry, error)
	Add(ctx context.Context, e domain.ContentEntry) error
	// Import replaces the whole corpus from a YAML document in one transaction.
	Import(ctx context.Context, data []byte) (int, error)
}
