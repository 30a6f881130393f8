package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/frontdesk/internal/contract"
	"github.com/alexanderramin/frontdesk/internal/domain"
	"github.com/alexanderramin/frontdesk/internal/intelligence"
	"github.com/alexanderramin/frontdesk/internal/llm"
	"github.com/alexanderramin/frontdesk/internal/repository"
	"github.com/alexanderramin/frontdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func ask(query, session string) contract.QueryRequest {
	return contract.QueryRequest{Query: query, SessionID: session}
}

func TestSubmit_ValidationHasNoSideEffects(t *testing.T) {
	f := newFrontDeskFixture(t, "Response: hi")
	ctx := context.Background()

	for _, req := range []contract.QueryRequest{ask("", "s1"), ask("hi", " ")} {
		resp, err := f.svc.Submit(ctx, req)
		assert.Nil(t, resp)
		var verr *contract.ValidationError
		require.True(t, errors.As(err, &verr))
	}

	assert.Empty(t, f.client.Requests(), "no completion call for invalid requests")
	list, err := f.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Scenario A: a fresh caller with no details gets the ask-both suffix.
func TestSubmit_FreshSessionAsksForNameAndNumber(t *testing.T) {
	f := newFrontDeskFixture(t, testutil.Completion("Unknown", "Unknown", "2", "BackPain",
		"User has back pain.\nUser: Unknown, Phone: Unknown, Interested in: BackPain",
		"Sorry to hear about your back pain. We offer mud therapy and massage."))
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, ask("I have back pain", "s-a"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(resp.Response, "Can you share your name and number to help us better?"))
	assert.Nil(t, resp.Name)
	assert.Nil(t, resp.Phone)
	require.NotNil(t, resp.MatchedTopicID)
	assert.Equal(t, 2, *resp.MatchedTopicID)
	assert.Equal(t, "BackPain", domain.StrOr(resp.Template, ""))
	assert.False(t, resp.Degraded)

	rec, err := f.sessions.Get(ctx, "s-a")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatLogEntry("I have back pain", resp.Response), rec.Log)
	assert.Equal(t, "User has back pain.\nUser: Unknown, Phone: Unknown, Interested in: BackPain", rec.Summary)

	event := f.observer.last()
	assert.Equal(t, UseCaseSubmit, event.Name)
	assert.True(t, event.Success)
	assert.Equal(t, "new", event.Fields["state"])
}

// Scenario B: a stored name survives a turn that does not report it.
func TestSubmit_KnownNameIsNotRegressed(t *testing.T) {
	f := newFrontDeskFixture(t, testutil.Completion("Unknown", "Unknown", "1", "Hello", "Asked for name.", "Your name is Asha."))
	ctx := context.Background()
	require.NoError(t, f.sessions.Upsert(ctx, "s-b", testutil.NewTestFields("User: Asha, Phone: Unknown, Interested in: Unknown", testutil.WithName("Asha"))))

	resp, err := f.svc.Submit(ctx, ask("What's my name?", "s-b"))
	require.NoError(t, err)

	require.NotNil(t, resp.Name)
	assert.Equal(t, "Asha", *resp.Name)
	assert.NotContains(t, resp.Response, "share your name")
	assert.True(t, strings.HasSuffix(resp.Response, suffixAskPhone))

	prompt := f.client.Requests()[0].UserPrompt
	assert.Contains(t, prompt, `already known to be "Asha"`)
	assert.Contains(t, prompt, "Chat history summary: User: Asha")
	assert.Equal(t, "active", f.observer.last().Fields["state"])
}

// Scenario C: output with no labels still yields a normal reply.
func TestSubmit_MalformedCompletionFallsBackToDefaults(t *testing.T) {
	f := newFrontDeskFixture(t, "I'm not sure what you mean.")
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, ask("asdf", "s-c"))
	require.NoError(t, err)

	assert.False(t, resp.Degraded)
	assert.True(t, strings.HasPrefix(resp.Response, "Hello! I'm here to help you with information about R K Nature Cure Home."))
	assert.True(t, strings.HasSuffix(resp.Response, suffixAskBoth))
	assert.Equal(t, intelligence.DefaultTemplate, domain.StrOr(resp.Template, ""))
	assert.Nil(t, resp.MatchedTopicID)

	rec, err := f.sessions.Get(ctx, "s-c")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderSummary, rec.Summary)
}

// Scenario D: racing turns on one session may lose the name, never crash.
func TestSubmit_ConcurrentSameSessionIsSafe(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	f := newFrontDeskFixture(t,
		testutil.Completion("Ravi", "Unknown", "1", "Hello", "s1", "Hi Ravi!"),
		testutil.Completion("Unknown", "Unknown", "3", "Pricing", "s2", "It is 500 INR."),
	)
	ctx := context.Background()

	var g errgroup.Group
	for _, q := range []string{"I am Ravi", "How much?"} {
		g.Go(func() error {
			resp, err := f.svc.Submit(ctx, ask(q, "s-d"))
			if err != nil {
				return err
			}
			if resp.Degraded {
				return fmt.Errorf("unexpected degraded reply for %q", q)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	rec, err := f.sessions.Get(ctx, "s-d")
	require.NoError(t, err)
	if rec.Name != nil {
		assert.Equal(t, "Ravi", *rec.Name)
	}
	assert.Len(t, rec.Entries(), 2, "log appends are never lost")
}

func TestSubmit_BadTopicKeepsPriorTopic(t *testing.T) {
	f := newFrontDeskFixture(t, testutil.Completion("Unknown", "Unknown", "99", "Hello", "s", "hi"))
	ctx := context.Background()
	require.NoError(t, f.sessions.Upsert(ctx, "s1", testutil.NewTestFields("s", testutil.WithTopic(3))))

	resp, err := f.svc.Submit(ctx, ask("hello", "s1"))
	require.NoError(t, err)
	require.NotNil(t, resp.MatchedTopicID)
	assert.Equal(t, 3, *resp.MatchedTopicID)
}

func TestSubmit_MultiTurnAccumulatesDetails(t *testing.T) {
	f := newFrontDeskFixture(t,
		testutil.Completion("Meera", "Unknown", "1", "Hello", "s1", "Hello Meera!"),
		testutil.Completion("Unknown", "9876543210", "2", "Location", "s2", "We are in Ganapathy."),
	)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, ask("I'm Meera", "s1"))
	require.NoError(t, err)
	assert.Equal(t, "Hello Meera!"+suffixAskPhone, first.Response)

	second, err := f.svc.Submit(ctx, ask("9876543210, where are you?", "s1"))
	require.NoError(t, err)
	assert.Equal(t, "We are in Ganapathy.", second.Response)
	assert.Equal(t, "Meera", domain.StrOr(second.Name, ""))
	assert.Equal(t, "9876543210", domain.StrOr(second.Phone, ""))

	rec, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		domain.FormatLogEntry("I'm Meera", first.Response),
		domain.FormatLogEntry("9876543210, where are you?", second.Response),
	}, rec.Entries())
}

func TestSubmit_ExtractionFailureIsDegradedWithoutWrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	client := &testutil.ScriptedLLMClient{Err: llm.ErrProviderUnavailable}
	f := newFrontDeskFixtureOn(t, database, client)
	ctx := context.Background()
	require.NoError(t, f.sessions.Upsert(ctx, "s1", testutil.NewTestFields("kept", testutil.WithName("Asha"))))

	resp, err := f.svc.Submit(ctx, ask("hello", "s1"))
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, "Hi Asha! Oops, something went wrong! Please call R K Nature Cure Home at +91 88700-66622 for help.", resp.Response)
	assert.Equal(t, "Asha", domain.StrOr(resp.Name, ""))

	rec, err := f.sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "kept", rec.Summary)
	assert.Empty(t, rec.Log)

	event := f.observer.last()
	assert.False(t, event.Success)
	assert.Equal(t, true, event.Fields["degraded"])
	var failure *intelligence.ExtractionFailure
	assert.True(t, errors.As(event.Err, &failure))
}

func TestSubmit_StoreFailuresAreDegraded(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *flakySessionRepo)
	}{
		{"read", func(r *flakySessionRepo) { r.failGet = true }},
		{"upsert", func(r *flakySessionRepo) { r.failUpsert = true }},
		{"append", func(r *flakySessionRepo) { r.failAppend = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := testutil.NewTestDB(t)
			sessions := &flakySessionRepo{SessionRepo: repository.NewSQLiteSessionRepo(database)}
			tt.setup(sessions)
			content := repository.NewSQLiteContentRepo(database)
			require.NoError(t, content.ReplaceAll(context.Background(), testutil.SeedCorpus()))
			obs := &captureObserver{}
			svc := NewFrontDeskService(sessions, content,
				intelligence.NewExtractor(testutil.NewScriptedLLMClient("Response: hi"), nil), obs)

			resp, err := svc.Submit(context.Background(), ask("hello", "s1"))
			require.NoError(t, err)
			assert.True(t, resp.Degraded)
			assert.True(t, strings.HasPrefix(resp.Response, "Oops, something went wrong!"))
			assert.ErrorIs(t, obs.last().Err, errInjected)
		})
	}
}

// The fields upsert and the log append are separate writes. When the append
// fails the new fields stay and the turn is missing from the log.
func TestSubmit_AppendFailureLeavesFieldsAheadOfLog(t *testing.T) {
	database := testutil.NewTestDB(t)
	content := repository.NewSQLiteContentRepo(database)
	require.NoError(t, content.ReplaceAll(context.Background(), testutil.SeedCorpus()))
	conn := testutil.NewFailingDBTX(database, 2, errInjected)
	client := testutil.NewScriptedLLMClient(testutil.Completion("Asha", "Unknown", "1", "", "Asha asked.", "Hi Asha."))
	svc := NewFrontDeskService(repository.NewSQLiteSessionRepo(conn), content, intelligence.NewExtractor(client, nil))
	ctx := context.Background()

	resp, err := svc.Submit(ctx, ask("I'm Asha", "s-drift"))
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Nil(t, resp.Name, "degraded replies echo what was stored before the turn")
	assert.Equal(t, 2, conn.Execs())

	rec, err := repository.NewSQLiteSessionRepo(database).Get(ctx, "s-drift")
	require.NoError(t, err)
	require.NotNil(t, rec.Name)
	assert.Equal(t, "Asha", *rec.Name)
	assert.Empty(t, rec.Log)
}

func TestSubmit_ContentFailureIsDegraded(t *testing.T) {
	database := testutil.NewTestDB(t)
	client := testutil.NewScriptedLLMClient("Response: hi")
	svc := NewFrontDeskService(repository.NewSQLiteSessionRepo(database), failingContentRepo{},
		intelligence.NewExtractor(client, nil))

	resp, err := svc.Submit(context.Background(), ask("hello", "s1"))
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Empty(t, client.Requests())
}
