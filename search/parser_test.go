package search

import (
	"sync"
	"testing"

	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intentSummary struct {
	Type  core.IntentType
	Value string
}

func summarize(q *core.Query) []intentSummary {
	out := make([]intentSummary, len(q.Intents))
	for i, intent := range q.Intents {
		out[i] = intentSummary{intent.Type, intent.Value}
	}
	return out
}

func TestParse(t *testing.T) {
	orgs := []string{"Goldman Sachs", "Goldman", "Acme", "A", "AT&T"}

	tests := []struct {
		name     string
		query    string
		want     []intentSummary
		freeText string
	}{
		{
			name:  "warmth and source",
			query: "warm contacts from referrals",
			want: []intentSummary{
				{core.IntentWarmth, "1"},
				{core.IntentSource, "Referral"},
			},
		},
		{
			name:  "owner and time",
			query: "sourced by Gabe this month",
			want: []intentSummary{
				{core.IntentOwner, "3"},
				{core.IntentTime, "30"},
			},
		},
		{
			name:  "possessive owner",
			query: "Gabriel's contacts",
			want:  []intentSummary{{core.IntentOwner, "3"}},
		},
		{
			name:  "assigned owner",
			query: "assigned to chris",
			want:  []intentSummary{{core.IntentOwner, "2"}},
		},
		{
			name:  "owned by",
			query: "owned by Brendan",
			want:  []intentSummary{{core.IntentOwner, "1"}},
		},
		{
			name:  "negated warmth wins over cold",
			query: "not cold CEO",
			want: []intentSummary{
				{core.IntentWarmth, "1,2,3"},
				{core.IntentRole, "ceo"},
			},
		},
		{
			name:  "engaged",
			query: "engaged",
			want:  []intentSummary{{core.IntentWarmth, "2,3"}},
		},
		{
			name:  "longest org and multi-word role",
			query: "managing director at Goldman Sachs",
			want: []intentSummary{
				{core.IntentCompany, "Goldman Sachs"},
				{core.IntentRole, "managing director"},
			},
		},
		{
			name:  "bare org",
			query: "acme cfo",
			want: []intentSummary{
				{core.IntentCompany, "Acme"},
				{core.IntentRole, "cfo"},
			},
		},
		{
			name:  "org with punctuation",
			query: "people at at&t",
			want:  []intentSummary{{core.IntentCompany, "AT&T"}},
		},
		{
			name:  "source followed by contacts",
			query: "LinkedIn contacts",
			want:  []intentSummary{{core.IntentSource, "LinkedIn"}},
		},
		{
			name:  "bare source name",
			query: "webinar",
			want:  []intentSummary{{core.IntentSource, "Webinar"}},
		},
		{
			name:  "earlier steps claim text first",
			query: "via cold email",
			want: []intentSummary{
				{core.IntentWarmth, "0"},
				{core.IntentName, "via email"},
			},
			freeText: "via email",
		},
		{
			name:  "recency with residual name",
			query: "recent Smith",
			want: []intentSummary{
				{core.IntentTime, "30"},
				{core.IntentName, "Smith"},
			},
			freeText: "Smith",
		},
		{
			name:     "plain name",
			query:    "  John   Smith ",
			want:     []intentSummary{{core.IntentName, "John Smith"}},
			freeText: "John Smith",
		},
		{
			name:  "single character residual is dropped",
			query: "find x",
			want:  []intentSummary{},
		},
		{
			name:  "filler only",
			query: "show me all the people",
			want:  []intentSummary{},
		},
		{
			name:  "punctuation only",
			query: "?? -- !!",
			want:  []intentSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.query, orgs, sources.Defaults())
			assert.Equal(t, tt.want, summarize(q))
			assert.Equal(t, tt.freeText, q.FreeText)
		})
	}
}

func TestParse_Labels(t *testing.T) {
	q := Parse("sourced by gabe warm contacts from referrals recently", nil, sources.Defaults())
	labels := make([]string, len(q.Intents))
	for i, intent := range q.Intents {
		labels[i] = intent.Label
	}
	// "recent" precedes "recently" in the phrase table, leaving "ly" behind.
	assert.Equal(t, []string{
		"Sourced by Gabe",
		"Added recent",
		"Warmth: warm",
		"Source: Referral",
		`Name: "s ly"`,
	}, labels)
}

func TestParse_RawIsTrimmed(t *testing.T) {
	q := Parse("  ceo  ", nil, nil)
	assert.Equal(t, "ceo", q.Raw)
	assert.NotNil(t, q.Intents)
}

func TestParse_ShortSourcesNeedContext(t *testing.T) {
	custom := []core.Source{{Name: "Web", Category: core.CategoryDigital}}

	q := Parse("web designers", nil, custom)
	assert.Equal(t, []intentSummary{{core.IntentName, "web designers"}}, summarize(q))

	q = Parse("via web", nil, custom)
	assert.Equal(t, []intentSummary{{core.IntentSource, "Web"}}, summarize(q))
}

func TestParse_AtMostOneOfEachKind(t *testing.T) {
	q := Parse("hot cold ceo cfo at Acme from Goldman", []string{"Acme", "Goldman"}, sources.Defaults())
	counts := map[core.IntentType]int{}
	for _, intent := range q.Intents {
		counts[intent.Type]++
	}
	for kind, n := range counts {
		assert.LessOrEqual(t, n, 1, "intent type %s", kind)
	}
	assert.Equal(t, "cold", q.Intents[0].Label[len("Warmth: "):])
}

func TestParseState_ClaimDoesNotMutate(t *testing.T) {
	start := parseState{
		remaining: "warm ceo",
		intents:   make([]core.Intent, 1, 4),
	}
	next := start.claim(0, 4, core.Intent{Type: core.IntentWarmth})

	assert.Equal(t, "warm ceo", start.remaining)
	assert.Len(t, start.intents, 1)
	assert.Equal(t, "  ceo", next.remaining)
	require.Len(t, next.intents, 2)

	// Appending to the original must not disturb the new state.
	_ = append(start.intents, core.Intent{Type: core.IntentRole})
	assert.Equal(t, core.IntentWarmth, next.intents[1].Type)
}

func TestParser_ReusedAcrossQueries(t *testing.T) {
	orgs := []string{"Goldman Sachs", "Acme"}
	catalog := sources.Defaults()
	parser := NewParser(orgs, catalog)

	queries := []string{
		"warm contacts from referrals",
		"managing director at Goldman Sachs",
		"acme cfo via linkedin",
		"linkedin people at acme",
		"smith",
	}
	// Run twice so compiled patterns are shared between calls.
	for round := 0; round < 2; round++ {
		for _, query := range queries {
			assert.Equal(t, Parse(query, orgs, catalog), parser.Parse(query), "round %d: %s", round, query)
		}
	}

	var wg sync.WaitGroup
	for _, query := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, Parse(query, orgs, catalog), parser.Parse(query), query)
		}()
	}
	wg.Wait()
}

func TestOrderOrgs(t *testing.T) {
	got := orderOrgs([]string{" Acme ", "acme", "Goldman Sachs", "X", "", "BigCo", "Zeta"})
	assert.Equal(t, []string{"Goldman Sachs", "BigCo", "Acme", "Zeta"}, got)
}

func TestWordPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme", `\bAcme\b`},
		{"Goldman  Sachs", `\bGoldman\s+Sachs\b`},
		{"Acme Inc.", `\bAcme\s+Inc\.`},
		{"(Holdings)", `\(Holdings\)`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, wordPattern(tt.in))
		})
	}
}

func TestStripFiller(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"show me the people", ""},
		{"Find  ALL   contacts with  Smith", "Smith"},
		{"list , - people", ""},
		{"showcase", "showcase"},
		{"o'brien and co", "o'brien co"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFiller(tt.in))
		})
	}
}
