package search

import (
	"log/slog"

	"github.com/poiesic/smartsearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterParse(query *core.Query)
	IntentMatched(person *core.Person, intent core.Intent, match Match)
	FreeTextMatched(person *core.Person, match Match)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                       {}
func (n *noopMonitor) AfterParse(_ *core.Query)                             {}
func (n *noopMonitor) IntentMatched(_ *core.Person, _ core.Intent, _ Match) {}
func (n *noopMonitor) FreeTextMatched(_ *core.Person, _ Match)              {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                        {}

// LogMonitor reports every search stage to a logger at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a monitor writing to logger, or slog.Default() if nil.
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "search-monitor")}
}

func (m *LogMonitor) Start(query string) {
	m.logger.Debug("search started", "query", query)
}

func (m *LogMonitor) AfterParse(query *core.Query) {
	m.logger.Debug("query parsed", "intents", len(query.Intents), "freeText", query.FreeText)
	for _, intent := range query.Intents {
		m.logger.Debug("intent", "type", intent.Type, "value", intent.Value, "label", intent.Label)
	}
}

func (m *LogMonitor) IntentMatched(person *core.Person, intent core.Intent, match Match) {
	m.logger.Debug("intent matched", "person", person.Id, "type", intent.Type, "score", match.Score, "why", match.Explanation)
}

func (m *LogMonitor) FreeTextMatched(person *core.Person, match Match) {
	m.logger.Debug("free text matched", "person", person.Id, "score", match.Score, "why", match.Explanation)
}

func (m *LogMonitor) Finish(results []*core.SearchResult) {
	m.logger.Debug("search finished", "results", len(results))
}
