package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/sources"
	"github.com/poiesic/smartsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func newTestSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	registry, err := sources.NewRegistry(context.Background(), nil)
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	searcher, err := NewSearcher(registry, opts...)
	require.NoError(t, err)
	return searcher
}

func testPeople() []*core.Person {
	return []*core.Person{
		{Id: 1, FirstName: "Alice", LastName: "Walker", Title: "CEO", Org: "Acme Capital", Email: "alice@acme.com",
			Warmth: core.WarmthWarm, Source: "Referral", City: "Boston", State: "MA", CreatedAt: daysAgo(3)},
		{Id: 2, FirstName: "Bob", LastName: "Stone", Title: "Managing Director", Org: "Blackstone Group", Email: "bob@bx.com",
			Warmth: core.WarmthHot, Source: "conference", City: "New York", CreatedAt: daysAgo(45)},
		{Id: 3, FirstName: "Carol", LastName: "Alison", Title: "Analyst", Org: "Acme Capital", Email: "carol@acme.com",
			Warmth: core.WarmthCold, Source: "cold_outreach", Country: "Canada", CreatedAt: daysAgo(10)},
		{Id: 4, FirstName: "Dan", LastName: "Brooks", Title: "Partner", Org: "Granite Ventures", Email: "dan@granite.vc",
			Warmth: core.WarmthWarm, Source: "Referral", Tags: []string{"fintech", "LP"}, CreatedAt: daysAgo(200)},
	}
}

func resultIds(results []*core.SearchResult) []int64 {
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.PersonId
	}
	return ids
}

func TestNewSearcher(t *testing.T) {
	registry, err := sources.NewRegistry(context.Background(), nil)
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(registry)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		assert.Equal(t, DefaultPoolSize, searcher.poolSize)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(registry, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(registry, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher.logger)
	})

	t.Run("with nil clock falls back to time.Now", func(t *testing.T) {
		searcher, err := NewSearcher(registry, WithClock(nil))
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), searcher.now(), time.Minute)
	})

	t.Run("invalid pool size", func(t *testing.T) {
		_, err := NewSearcher(registry, WithPoolSize(0))
		assert.ErrorIs(t, err, ErrInvalidPoolSize)
	})

	t.Run("nil source resolver", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrSourceResolverRequired, err)
	})
}

func TestSearch_WarmReferrals(t *testing.T) {
	searcher := newTestSearcher(t)
	people := []*core.Person{
		{Id: 7, FirstName: "Erin", LastName: "Moss", Warmth: core.WarmthWarm, Source: "Referral", CreatedAt: daysAgo(400)},
	}

	results := searcher.Search("warm contacts from referrals", people)
	require.Len(t, results, 1)
	assert.Equal(t, int64(7), results[0].PersonId)
	assert.Equal(t, 90, results[0].Score)
	assert.Equal(t, []string{"Warmth: warm", "Source: Referral"}, results[0].Explanations)
	require.Len(t, results[0].MatchedIntents, 2)
	assert.Equal(t, core.IntentWarmth, results[0].MatchedIntents[0].Type)
	assert.Equal(t, core.IntentSource, results[0].MatchedIntents[1].Type)
}

func TestSearch_OwnerNeverScores(t *testing.T) {
	searcher := newTestSearcher(t)

	results := searcher.Search("sourced by Gabe this month", testPeople())
	// Only people added in the last 30 days match, on recency alone.
	assert.Equal(t, []int64{1, 3}, resultIds(results))
	for _, r := range results {
		assert.Equal(t, 30, r.Score)
		for _, intent := range r.MatchedIntents {
			assert.NotEqual(t, core.IntentOwner, intent.Type)
		}
	}
	assert.Equal(t, []string{"Added 3 days ago"}, results[0].Explanations)
	assert.Equal(t, []string{"Added 1 week ago"}, results[1].Explanations)
}

func TestSearch_FillerOnlyQueries(t *testing.T) {
	searcher := newTestSearcher(t)

	for _, q := range []string{"", "   ", "show me all the contacts", "find people, who are...", "?!"} {
		t.Run(q, func(t *testing.T) {
			results := searcher.Search(q, testPeople())
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestExecute_EmptyQuery(t *testing.T) {
	searcher := newTestSearcher(t)

	assert.Empty(t, searcher.Execute(nil, testPeople()))
	assert.Empty(t, searcher.Execute(&core.Query{Raw: "the"}, testPeople()))
}

func TestSearch_Ranking(t *testing.T) {
	searcher := newTestSearcher(t)

	t.Run("descending score", func(t *testing.T) {
		// Alice matches on first name, Carol on last name; both score 80 as
		// a name and 80 again as free text.
		results := searcher.Search("ali", testPeople())
		assert.Equal(t, []int64{1, 3}, resultIds(results))
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})

	t.Run("company beats role", func(t *testing.T) {
		results := searcher.Search("analyst at Acme Capital", testPeople())
		require.Len(t, results, 2)
		assert.Equal(t, int64(3), results[0].PersonId)
		assert.Equal(t, 160, results[0].Score)
		assert.Equal(t, []string{"Company: Acme Capital", "Role: Analyst"}, results[0].Explanations)
		assert.Equal(t, int64(1), results[1].PersonId)
		assert.Equal(t, 100, results[1].Score)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		results := searcher.Search("warm", testPeople())
		assert.Equal(t, []int64{1, 4}, resultIds(results))
	})
}

func TestSearch_Idempotent(t *testing.T) {
	searcher := newTestSearcher(t)
	people := testPeople()

	first := searcher.Search("hot managing director at Blackstone Group", people)
	second := searcher.Search("hot managing director at Blackstone Group", people)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, 100+40+60, first[0].Score)
}

func TestExecute_FreeTextAddsToNameIntent(t *testing.T) {
	searcher := newTestSearcher(t)

	t.Run("residual scores as name and free text", func(t *testing.T) {
		results := searcher.Search("Dan Brooks", testPeople())
		require.Len(t, results, 1)
		assert.Equal(t, 100+100, results[0].Score)
		assert.Equal(t, []string{"Exact name match"}, results[0].Explanations)
		require.Len(t, results[0].MatchedIntents, 1)
		assert.Equal(t, core.IntentName, results[0].MatchedIntents[0].Type)
	})

	t.Run("doubled residual changes ranking", func(t *testing.T) {
		people := []*core.Person{
			{Id: 1, FirstName: "Jo", LastName: "Annsmith", CreatedAt: daysAgo(3)},
			{Id: 2, FirstName: "Smith", LastName: "Jones", CreatedAt: daysAgo(300)},
		}
		results := searcher.Search("recent smith", people)
		require.Len(t, results, 2)
		assert.Equal(t, int64(2), results[0].PersonId)
		assert.Equal(t, 80+80, results[0].Score)
		assert.Equal(t, int64(1), results[1].PersonId)
		assert.Equal(t, 30+60+60, results[1].Score)
		assert.Equal(t, []string{"Added 3 days ago", `Name contains "smith"`}, results[1].Explanations)
	})

	t.Run("free text without a name intent", func(t *testing.T) {
		query := &core.Query{Raw: "ventures", FreeText: "ventures", Intents: []core.Intent{}}
		results := searcher.Execute(query, testPeople())
		require.Len(t, results, 1)
		assert.Equal(t, int64(4), results[0].PersonId)
		assert.Equal(t, 40, results[0].Score)
		assert.Equal(t, []string{"Company: Granite Ventures"}, results[0].Explanations)
		assert.Empty(t, results[0].MatchedIntents)
	})
}

func TestExecute_SkipsNilPeople(t *testing.T) {
	searcher := newTestSearcher(t)
	people := append([]*core.Person{nil}, testPeople()...)

	results := searcher.Search("ceo", people)
	assert.Equal(t, []int64{1}, resultIds(results))
}

func TestSearch_CustomSourceFromStore(t *testing.T) {
	repo, backend, err := badger.NewMemorySourceRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	registry, err := sources.NewRegistry(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, registry.AddCustom(ctx, core.Source{Name: "Podcast Guest", Category: core.CategoryDigital}))

	searcher, err := NewSearcher(registry, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	people := []*core.Person{
		{Id: 1, FirstName: "Fay", Source: "podcast guest"},
		{Id: 2, FirstName: "Gus", Source: "LinkedIn"},
		{Id: 3, FirstName: "Hal", Source: "Referral"},
	}
	results := searcher.Search("podcast guest contacts", people)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].PersonId)
	assert.Equal(t, 50, results[0].Score)
	assert.Equal(t, int64(2), results[1].PersonId)
	assert.Equal(t, []string{"Source category: Digital"}, results[1].Explanations)
}

type recordingMonitor struct {
	noopMonitor
	started  string
	parsed   *core.Query
	intents  int
	finished int
}

func (m *recordingMonitor) Start(query string) { m.started = query }

func (m *recordingMonitor) AfterParse(query *core.Query) { m.parsed = query }

func (m *recordingMonitor) IntentMatched(_ *core.Person, _ core.Intent, _ Match) { m.intents++ }

func (m *recordingMonitor) Finish(results []*core.SearchResult) { m.finished = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	searcher := newTestSearcher(t)
	monitor := &recordingMonitor{}

	results := searcher.SearchWithMonitor("warm ceo", testPeople(), monitor)
	assert.Equal(t, "warm ceo", monitor.started)
	require.NotNil(t, monitor.parsed)
	assert.Len(t, monitor.parsed.Intents, 2)
	// Alice matches warmth and role, Dan only warmth.
	assert.Equal(t, 3, monitor.intents)
	assert.Equal(t, len(results), monitor.finished)

	// The logging monitor must accept every callback.
	assert.NotPanics(t, func() {
		searcher.SearchWithMonitor("warm ceo", testPeople(), NewLogMonitor(nil))
	})
}

func TestKnownOrgs(t *testing.T) {
	people := testPeople()
	people = append(people, nil, &core.Person{Id: 9, Org: "  acme capital "}, &core.Person{Id: 10})
	assert.Equal(t, []string{"Acme Capital", "Blackstone Group", "Granite Ventures"}, KnownOrgs(people))
}
