package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
	"github.com/alexanderramin/frontdesk/internal/repository"
)

type frontDeskService struct {
	sessions  repository.SessionRepo
	content   repository.ContentRepo
	extractor *intelligence.Extractor
	writer    sessionWriter
	observer  UseCaseObserver
}

// NewFrontDeskService wires the reconciler. content is read on every turn,
// so pass a repository.CachedContentRepo in production.
func NewFrontDeskService(
	sessions repository.SessionRepo,
	content repository.ContentRepo,
	extractor *intelligence.Extractor,
	observers ...UseCaseObserver,
) FrontDeskService {
	return &frontDeskService{
		sessions:  sessions,
		content:   content,
		extractor: extractor,
		writer:    sessionWriter{sessions: sessions},
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *frontDeskService) Submit(ctx context.Context, req contract.QueryRequest) (resp *contract.QueryResponse, err error) {
	fields := map[string]any{"session_id": req.SessionID, "degraded": false}
	var failure error
	done := observe(ctx, s.observer, UseCaseSubmit, fields)
	defer func() {
		if err != nil {
			done(err)
			return
		}
		done(failure)
	}()

	if err = req.Validate(); err != nil {
		return nil, err
	}

	prior, err := s.loadPrior(ctx, req.SessionID)
	if err != nil {
		failure = err
		return s.degraded(req, nil, fields), nil
	}
	fields["state"] = string(domain.StateOf(prior))

	topics, err := s.content.List(ctx)
	if err != nil {
		failure = fmt.Errorf("loading content: %w", err)
		return s.degraded(req, prior, fields), nil
	}

	priorFields := prior.Fields()
	extraction, err := s.extractor.Extract(ctx, intelligence.ExtractionInput{
		Query:        req.Query,
		KnownName:    priorFields.Name,
		KnownPhone:   priorFields.Phone,
		Topics:       topics,
		PriorSummary: priorFields.Summary,
	})
	if err != nil {
		failure = err
		return s.degraded(req, prior, fields), nil
	}
	fields["model"] = extraction.Model
	fields["llm_latency_ms"] = extraction.LatencyMs

	merged := MergeFields(priorFields, extraction.Fields)
	reply := ComposeReply(s.extractor.Guidance().Business.Name, extraction.Fields, merged)

	if err = s.writer.Persist(ctx, req.SessionID, merged, domain.FormatLogEntry(req.Query, reply)); err != nil {
		failure = err
		return s.degraded(req, prior, fields), nil
	}

	fields["template"] = domain.StrOr(merged.Template, "")
	if merged.MatchedTopicID != nil {
		fields["topic_id"] = *merged.MatchedTopicID
	}
	return &contract.QueryResponse{
		Response:       reply,
		SessionID:      req.SessionID,
		Name:           merged.Name,
		Phone:          merged.Phone,
		MatchedTopicID: merged.MatchedTopicID,
		Template:       merged.Template,
	}, nil
}

// loadPrior returns nil for a session that has never been written.
func (s *frontDeskService) loadPrior(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	rec, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return rec, nil
}

// degraded answers with the apology and the stored fields, unchanged.
func (s *frontDeskService) degraded(req contract.QueryRequest, prior *domain.SessionRecord, fields map[string]any) *contract.QueryResponse {
	fields["degraded"] = true
	stored := prior.Fields()
	return &contract.QueryResponse{
		Response:       Apology(s.extractor.Guidance().Business, stored.Name),
		SessionID:      req.SessionID,
		Name:           stored.Name,
		Phone:          stored.Phone,
		MatchedTopicID: stored.MatchedTopicID,
		Template:       stored.Template,
		Degraded:       true,
	}
}
