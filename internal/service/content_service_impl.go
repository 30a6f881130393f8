package service

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/frontdesk/internal/db"
	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/repository"
)

// ContentFile is the YAML layout accepted by Import.
type ContentFile struct {
	Content []ContentFileEntry `yaml:"content"`
}

type ContentFileEntry struct {
	ID      int    `yaml:"id"`
	Keyword string `yaml:"keyword"`
	Content string `yaml:"content"`
}

type contentService struct {
	content  repository.ContentRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewContentService manages the corpus. If content caches (it has an
// Invalidate method), Import drops the cache after committing.
func NewContentService(content repository.ContentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ContentService {
	return &contentService{
		content:  content,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *contentService) List(ctx context.Context) ([]domain.ContentEntry, error) {
	return s.content.List(ctx)
}

func (s *contentService) Add(ctx context.Context, e domain.ContentEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.content.Upsert(ctx, e)
}

func (s *contentService) Import(ctx context.Context, data []byte) (count int, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, UseCaseContentImport, fields)
	defer func() { done(err) }()

	entries, err := ParseContentFile(data)
	if err != nil {
		return 0, err
	}
	fields["entries"] = len(entries)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteContentRepo(tx).ReplaceAll(ctx, entries)
	})
	if err != nil {
		return 0, fmt.Errorf("importing content: %w", err)
	}
	if inv, ok := s.content.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
	return len(entries), nil
}

// ParseContentFile decodes and validates a corpus file. Ids must be unique.
func ParseContentFile(data []byte) ([]domain.ContentEntry, error) {
	var f ContentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding content file: %w", err)
	}
	if len(f.Content) == 0 {
		return nil, fmt.Errorf("content file has no entries")
	}

	seen := make(map[int]bool, len(f.Content))
	entries := make([]domain.ContentEntry, 0, len(f.Content))
	for _, raw := range f.Content {
		e := domain.ContentEntry{ID: raw.ID, Keyword: raw.Keyword, Content: raw.Content}
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate content id %d", e.ID)
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries, nil
}
