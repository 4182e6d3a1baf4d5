package search

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/smartsearch/core"
)

// DefaultPoolSize is the number of workers used by SearchBatch.
const DefaultPoolSize = 8

// SourceResolver maps free-text source values onto known sources and lists
// the sources the parser should look for. *sources.Registry implements it.
type SourceResolver interface {
	Resolve(raw string) *core.Source
	All() []core.Source
}

// Searcher runs natural-language and filter searches over caller-supplied
// people. It holds no per-search state and is safe for concurrent use.
type Searcher struct {
	sources  SourceResolver
	now      func() time.Time
	poolSize int
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used for recency matching.
// Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// WithPoolSize sets the number of workers used by SearchBatch.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size <= 0 {
			return ErrInvalidPoolSize
		}
		s.poolSize = size
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(sources SourceResolver, opts ...Option) (*Searcher, error) {
	if sources == nil {
		return nil, ErrSourceResolverRequired
	}

	s := &Searcher{
		sources:  sources,
		now:      time.Now,
		poolSize: DefaultPoolSize,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Parse extracts intents from query, looking for the given organizations
// and every source the resolver knows.
func (s *Searcher) Parse(query string, knownOrgs []string) *core.Query {
	return s.Parser(knownOrgs).Parse(query)
}

// Parser builds a reusable Parser for the given organizations and every
// source the resolver currently knows.
func (s *Searcher) Parser(knownOrgs []string) *Parser {
	return NewParser(knownOrgs, s.sources.All())
}

// MatchIntent scores a single intent against a person. It returns false
// when the intent does not match; owner intents never match.
func (s *Searcher) MatchIntent(intent core.Intent, person *core.Person) (Match, bool) {
	return s.matcher().match(intent, person)
}

func (s *Searcher) matcher() matcher {
	return matcher{resolve: s.sources.Resolve, now: s.now()}
}

// Search parses query using the organizations found in people and runs it.
func (s *Searcher) Search(query string, people []*core.Person) []*core.SearchResult {
	return s.SearchWithMonitor(query, people, nil)
}

// SearchWithMonitor is Search with a monitor receiving callbacks at each
// stage.
func (s *Searcher) SearchWithMonitor(query string, people []*core.Person, monitor SearchMonitor) []*core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)
	parsed := s.Parse(query, KnownOrgs(people))
	monitor.AfterParse(parsed)
	return s.ExecuteWithMonitor(parsed, people, monitor)
}

// Execute scores every person against a parsed query.
//
// Matching intent scores are summed per person and the query's free text
// score is added on top, even when a name intent carries the same text. A
// free-text explanation already given by the name intent is not repeated.
// People with a
// positive total are returned in descending score order; ties keep the
// order of people. A query with no intents and no free text returns an
// empty slice.
func (s *Searcher) Execute(query *core.Query, people []*core.Person) []*core.SearchResult {
	return s.ExecuteWithMonitor(query, people, nil)
}

// ExecuteWithMonitor is Execute with a monitor receiving match callbacks.
func (s *Searcher) ExecuteWithMonitor(query *core.Query, people []*core.Person, monitor SearchMonitor) []*core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	results := make([]*core.SearchResult, 0)
	if query.Empty() {
		s.logger.Debug("empty query", "raw", rawOf(query))
		monitor.Finish(results)
		return results
	}

	m := s.matcher()

	for _, person := range people {
		if person == nil {
			continue
		}
		result := &core.SearchResult{PersonId: person.Id}
		for _, intent := range query.Intents {
			match, ok := m.match(intent, person)
			if !ok {
				continue
			}
			monitor.IntentMatched(person, intent, match)
			result.Score += match.Score
			result.Explanations = append(result.Explanations, match.Explanation)
			result.MatchedIntents = append(result.MatchedIntents, intent)
		}
		if query.FreeText != "" {
			if match, ok := scoreFreeText(query.FreeText, person); ok {
				monitor.FreeTextMatched(person, match)
				result.Score += match.Score
				if !slices.Contains(result.Explanations, match.Explanation) {
					result.Explanations = append(result.Explanations, match.Explanation)
				}
			}
		}
		if result.Score > 0 {
			results = append(results, result)
		}
	}

	rank(results)
	s.logger.Debug("search complete", "raw", query.Raw, "intents", len(query.Intents), "results", len(results))
	monitor.Finish(results)
	return results
}

// KnownOrgs returns the distinct non-empty organization names of people in
// first-seen order.
func KnownOrgs(people []*core.Person) []string {
	seen := make(map[string]struct{})
	orgs := make([]string, 0)
	for _, p := range people {
		if p == nil {
			continue
		}
		org := strings.TrimSpace(p.Org)
		if org == "" {
			continue
		}
		key := strings.ToLower(org)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		orgs = append(orgs, org)
	}
	return orgs
}

// rank sorts results by descending score, keeping input order for ties.
func rank(results []*core.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func rawOf(q *core.Query) string {
	if q == nil {
		return ""
	}
	return q.Raw
}
