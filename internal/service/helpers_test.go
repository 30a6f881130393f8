package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
	"github.com/alexanderramin/frontdesk/internal/llm"
	"github.com/alexanderramin/frontdesk/internal/repository"
	"github.com/alexanderramin/frontdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

type frontDeskFixture struct {
	db       *sql.DB
	sessions *repository.SQLiteSessionRepo
	content  *repository.CachedContentRepo
	client   *testutil.ScriptedLLMClient
	observer *captureObserver
	svc      FrontDeskService
}

func newFrontDeskFixture(t *testing.T, responses ...string) *frontDeskFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newFrontDeskFixtureOn(t, database, testutil.NewScriptedLLMClient(responses...))
}

func newFrontDeskFixtureOn(t *testing.T, database *sql.DB, client llm.LLMClient) *frontDeskFixture {
	t.Helper()
	sessions := repository.NewSQLiteSessionRepo(database)
	content := repository.NewCachedContentRepo(repository.NewSQLiteContentRepo(database))
	require.NoError(t, content.ReplaceAll(context.Background(), testutil.SeedCorpus()))

	obs := &captureObserver{}
	f := &frontDeskFixture{
		db:       database,
		sessions: sessions,
		content:  content,
		observer: obs,
		svc:      NewFrontDeskService(sessions, content, intelligence.NewExtractor(client, nil), obs),
	}
	if scripted, ok := client.(*testutil.ScriptedLLMClient); ok {
		f.client = scripted
	}
	return f
}

type captureObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *captureObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

var errInjected = errors.New("injected store failure")

// flakySessionRepo fails selected operations.
type flakySessionRepo struct {
	repository.SessionRepo
	failGet, failUpsert, failAppend bool
}

func (r *flakySessionRepo) Get(ctx context.Context, id string) (*domain.SessionRecord, error) {
	if r.failGet {
		return nil, errInjected
	}
	return r.SessionRepo.Get(ctx, id)
}

func (r *flakySessionRepo) Upsert(ctx context.Context, id string, f domain.SessionFields) error {
	if r.failUpsert {
		return errInjected
	}
	return r.SessionRepo.Upsert(ctx, id, f)
}

func (r *flakySessionRepo) AppendLog(ctx context.Context, id, entry string) error {
	if r.failAppend {
		return errInjected
	}
	return r.SessionRepo.AppendLog(ctx, id, entry)
}

type failingContentRepo struct {
	repository.ContentRepo
}

func (failingContentRepo) List(context.Context) ([]domain.ContentEntry, error) {
	return nil, errInjected
}
