package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentRepo_ReplaceAllAndList(t *testing.T) {
	repo := NewSQLiteContentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.SeedCorpus()))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutil.SeedCorpus(), entries)

	require.NoError(t, repo.ReplaceAll(ctx, []domain.ContentEntry{{ID: 9, Keyword: "Hours", Content: "6 AM to 8 PM"}}))
	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 9, entries[0].ID)
}

func TestContentRepo_EmptyCorpus(t *testing.T) {
	repo := NewSQLiteContentRepo(testutil.NewTestDB(t))
	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestContentRepo_GetByIDAndUpsert(t *testing.T) {
	repo := NewSQLiteContentRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	entry := testutil.NewTestContent("Diet", testutil.WithContentID(7))
	require.NoError(t, repo.Upsert(ctx, entry))
	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, entry, *got)

	entry.Content = "Sattvic meals."
	require.NoError(t, repo.Upsert(ctx, entry))
	got, err = repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Sattvic meals.", got.Content)
}

type countingContentRepo struct {
	ContentRepo
	lists int
}

func (c *countingContentRepo) List(ctx context.Context) ([]domain.ContentEntry, error) {
	c.lists++
	return c.ContentRepo.List(ctx)
}

func TestCachedContentRepo_ServesFromMemoryUntilWrite(t *testing.T) {
	inner := &countingContentRepo{ContentRepo: NewSQLiteContentRepo(testutil.NewTestDB(t))}
	cached := NewCachedContentRepo(inner)
	ctx := context.Background()

	require.NoError(t, cached.ReplaceAll(ctx, testutil.SeedCorpus()))

	for i := 0; i < 3; i++ {
		entries, err := cached.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	}
	assert.Equal(t, 1, inner.lists)

	require.NoError(t, cached.Upsert(ctx, domain.ContentEntry{ID: 4, Keyword: "Yoga"}))
	entries, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, 2, inner.lists)

	cached.Invalidate()
	_, err = cached.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.lists)
}

func TestCachedContentRepo_ReturnsCopies(t *testing.T) {
	cached := NewCachedContentRepo(NewSQLiteContentRepo(testutil.NewTestDB(t)))
	ctx := context.Background()
	require.NoError(t, cached.ReplaceAll(ctx, testutil.SeedCorpus()))

	first, err := cached.List(ctx)
	require.NoError(t, err)
	first[0].Keyword = "mutated"

	second, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Therapies", second[0].Keyword)
}
