package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/smartsearch/ai"
	"github.com/poiesic/smartsearch/core"
)

// MockClassifier is a deterministic ai.FilterClassifier for tests.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, canned Responses are looked up by normalized query.
	ClassifyFunc func(ctx context.Context, query string) (*core.Filters, error)

	// Responses maps a lowercased, trimmed query to the filters returned
	// for it. Unknown queries yield empty filters.
	Responses map[string]*core.Filters

	mu        sync.Mutex
	callCount int
	queries   []string
}

var _ ai.FilterClassifier = (*MockClassifier)(nil)

func NewMockClassifier() *MockClassifier {
	return &MockClassifier{Responses: make(map[string]*core.Filters)}
}

func (m *MockClassifier) Classify(ctx context.Context, query string) (*core.Filters, error) {
	m.mu.Lock()
	m.callCount++
	m.queries = append(m.queries, query)
	fn := m.ClassifyFunc
	filters, ok := m.Responses[strings.ToLower(strings.TrimSpace(query))]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok || filters == nil {
		return &core.Filters{}, nil
	}
	// Hand out a copy so callers cannot alter the canned response.
	out := *filters
	return &out, nil
}

func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func (m *MockClassifier) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func (m *MockClassifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.queries = nil
	m.ClassifyFunc = nil
}
