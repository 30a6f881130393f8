package repository

import (
	"context"
	"sync"

	"github.com/alexanderramin/frontdesk/internal/domain"
)

// CachedContentRepo serves List from memory after the first load.
// Writes go through to the wrapped repo and drop the cache.
type CachedContentRepo struct {
	inner ContentRepo

	mu      sync.RWMutex
	entries []domain.ContentEntry
	loaded  bool
}

func NewCachedContentRepo(inner ContentRepo) *CachedContentRepo {
	return &CachedContentRepo{inner: inner}
}

func (c *CachedContentRepo) List(ctx context.Context) ([]domain.ContentEntry, error) {
	c.mu.RLock()
	if c.loaded {
		out := append([]domain.ContentEntry(nil), c.entries...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		entries, err := c.inner.List(ctx)
		if err != nil {
			return nil, err
		}
		c.entries = entries
		c.loaded = true
	}
	return append([]domain.ContentEntry(nil), c.entries...), nil
}

func (c *CachedContentRepo) GetByID(ctx context.Context, id int) (*domain.ContentEntry, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachedContentRepo) Upsert(ctx context.Context, e domain.ContentEntry) error {
	defer c.Invalidate()
	return c.inner.Upsert(ctx, e)
}

func (c *CachedContentRepo) ReplaceAll(ctx context.Context, entries []domain.ContentEntry) error {
	defer c.Invalidate()
	return c.inner.ReplaceAll(ctx, entries)
}

// Invalidate forces the next List to reload from the wrapped repo.
func (c *CachedContentRepo) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.loaded = false
	c.mu.Unlock()
}

var _ ContentRepo = (*CachedContentRepo)(nil)
