package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
	"github.com/alexanderramin/frontdesk/internal/repository"
)

// LeadCSVHeader is the column order of ExportCSV.
var LeadCSVHeader = []string{"Name", "Number", "Product", "Summary", "Log"}

type leadService struct {
	sessions  repository.SessionRepo
	content   repository.ContentRepo
	details   repository.LeadDetailsRepo
	extractor *intelligence.LeadExtractor
	observer  UseCaseObserver
}

// NewLeadService builds the dashboard view. A nil extractor reads missing
// details from the summary line only. Model extractions are stored in
// details and reused until the session is written again; a nil details repo
// asks the model on every read.
func NewLeadService(
	sessions repository.SessionRepo,
	content repository.ContentRepo,
	details repository.LeadDetailsRepo,
	extractor *intelligence.LeadExtractor,
	observers ...UseCaseObserver,
) LeadService {
	return &leadService{
		sessions:  sessions,
		content:   content,
		details:   details,
		extractor: extractor,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *leadService) List(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, error) {
	records, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	topics, err := s.topicIndex(ctx)
	if err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(records))
	for _, rec := range records {
		lead := s.toLead(ctx, rec, topics)
		if filter.Matches(lead) {
			leads = append(leads, lead)
		}
	}
	return leads, nil
}

func (s *leadService) Get(ctx context.Context, sessionID string) (*domain.Lead, error) {
	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	topics, err := s.topicIndex(ctx)
	if err != nil {
		return nil, err
	}
	lead := s.toLead(ctx, rec, topics)
	return &lead, nil
}

func (s *leadService) ExportCSV(ctx context.Context, w io.Writer, filter domain.LeadFilter) (n int, err error) {
	done := observe(ctx, s.observer, UseCaseLeadExport, map[string]any{
		"name_filter":     filter.Name,
		"interest_filter": filter.Interest,
	})
	defer func() { done(err) }()

	leads, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(LeadCSVHeader); err != nil {
		return 0, fmt.Errorf("writing csv header: %w", err)
	}
	for _, l := range leads {
		if err := cw.Write([]string{l.Name, l.Phone, l.Interest, l.Summary, l.Log}); err != nil {
			return n, fmt.Errorf("writing lead %s: %w", l.SessionID, err)
		}
		n++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("flushing csv: %w", err)
	}
	return n, nil
}

func (s *leadService) topicIndex(ctx context.Context) (map[int]domain.ContentEntry, error) {
	entries, err := s.content.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return domain.ContentByID(entries), nil
}

// toLead prefers stored fields, then the topic keyword, then the extracted
// details for the session's current version.
func (s *leadService) toLead(ctx context.Context, rec *domain.SessionRecord, topics map[int]domain.ContentEntry) domain.Lead {
	lead := domain.Lead{
		SessionID: rec.SessionID,
		Name:      domain.StrOr(rec.Name, ""),
		Phone:     domain.StrOr(rec.Phone, ""),
		Summary:   rec.Summary,
		Log:       rec.Log,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.MatchedTopicID != nil {
		if t, ok := topics[*rec.MatchedTopicID]; ok {
			lead.Interest = t.Keyword
		}
	}
	if lead.Name != "" && lead.Phone != "" && lead.Interest != "" {
		return lead
	}

	info := s.extractDetails(ctx, rec)
	lead.Name = domain.CoalesceStr(lead.Name, info.Name)
	lead.Phone = domain.CoalesceStr(lead.Phone, info.Phone)
	lead.Interest = domain.CoalesceStr(lead.Interest, info.Interest)
	return lead
}

// extractDetails returns stored details when they match rec, otherwise
// extracts them. Only model answers are stored; a summary fallback is cheap
// and a failed model call should be retried on the next read.
func (s *leadService) extractDetails(ctx context.Context, rec *domain.SessionRecord) intelligence.LeadInfo {
	if s.details != nil && s.extractor != nil {
		stored, err := s.details.Get(ctx, rec.SessionID)
		if err == nil && stored.FreshFor(rec) {
			return intelligence.LeadInfo{Name: stored.Name, Phone: stored.Phone, Interest: stored.Interest, Source: "stored"}
		}
	}

	info := s.extractor.Extract(ctx, rec.Summary)
	if s.details != nil && info.Source == "llm" && !rec.UpdatedAt.IsZero() {
		// A failed write only costs a repeat extraction on the next read.
		_ = s.details.Upsert(ctx, domain.LeadDetails{
			SessionID:        rec.SessionID,
			Name:             info.Name,
			Phone:            info.Phone,
			Interest:         info.Interest,
			SessionUpdatedAt: rec.UpdatedAt,
		})
	}
	return info
}
