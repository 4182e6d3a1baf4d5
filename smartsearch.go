// Package smartsearch wires the contact search engine together: custom
// source storage, the source registry, the searcher and an optional
// language-model filter classifier.
package smartsearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/smartsearch/ai"
	"github.com/poiesic/smartsearch/ai/openai"
	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/search"
	"github.com/poiesic/smartsearch/sources"
	"github.com/poiesic/smartsearch/storage"
	"github.com/poiesic/smartsearch/storage/badger"
)

type Engine struct {
	backend    *badger.Backend
	sourceRepo storage.SourceRepository
	registry   *sources.Registry
	searcher   *search.Searcher
	provider   ai.Provider
	logger     *slog.Logger
}

type EngineOption func(*engineOptions)

type engineOptions struct {
	inMemory      bool
	aiConfig      *ai.Config
	provider      ai.Provider
	logger        *slog.Logger
	searchOptions []search.Option
}

// WithInMemory keeps custom sources in memory instead of on disk.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithClassifierConfig enables filter classification through an
// OpenAI-compatible service.
func WithClassifierConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider enables filter classification through an existing provider.
// It takes precedence over WithClassifierConfig.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithSearchOptions passes extra options to the searcher.
func WithSearchOptions(opts ...search.Option) EngineOption {
	return func(o *engineOptions) {
		o.searchOptions = append(o.searchOptions, opts...)
	}
}

func NewEngine(ctx context.Context, filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create source repository
	sourceRepo, err := badger.NewSourceRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	registry, err := sources.NewRegistry(ctx, sourceRepo, sources.WithLogger(options.logger))
	if err != nil {
		sourceRepo.Close()
		backend.Close()
		return nil, err
	}

	searchOpts := append([]search.Option{search.WithLogger(options.logger)}, options.searchOptions...)
	searcher, err := search.NewSearcher(registry, searchOpts...)
	if err != nil {
		sourceRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider when classification is configured
	provider := options.provider
	if provider == nil && options.aiConfig != nil {
		provider, err = openai.NewProvider(options.aiConfig,
			openai.WithSourceCatalog(registry),
			openai.WithLogger(options.logger))
		if err != nil {
			sourceRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:    backend,
		sourceRepo: sourceRepo,
		registry:   registry,
		searcher:   searcher,
		provider:   provider,
		logger:     options.logger,
	}, nil
}

func (e *Engine) Close() error {
	// Close AI provider first
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	// Close repositories
	if err := e.sourceRepo.Close(); err != nil {
		e.logger.Error("error closing source repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) Registry() *sources.Registry {
	return e.registry
}

func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Sources returns the default catalog followed by custom sources.
func (e *Engine) Sources() []core.Source {
	return e.registry.All()
}

// AddSource stores a custom source. Names colliding with a known source
// are ignored.
func (e *Engine) AddSource(ctx context.Context, source core.Source) error {
	return e.registry.AddCustom(ctx, source)
}

// ResolveSource maps a free-text source value onto a known source.
func (e *Engine) ResolveSource(raw string) *core.Source {
	return e.registry.Resolve(raw)
}

// Search runs a natural-language query over people.
func (e *Engine) Search(query string, people []*core.Person) []*core.SearchResult {
	return e.searcher.Search(query, people)
}

// ClassifierEnabled reports whether Classify can be used.
func (e *Engine) ClassifierEnabled() bool {
	return e.provider != nil
}

// Classify turns query into structured filters using the configured
// classifier. It returns ai.ErrClassifierNotConfigured when none is set up.
func (e *Engine) Classify(ctx context.Context, query string) (*core.Filters, error) {
	if e.provider == nil {
		return nil, ai.ErrClassifierNotConfigured
	}
	return e.provider.Classifier().Classify(ctx, query)
}

// FilterSearch classifies query and applies the resulting filters to
// people. Classification errors are returned and no filtering is done.
// The classified filters are returned alongside the results.
func (e *Engine) FilterSearch(ctx context.Context, query string, people []*core.Person, fc *core.FilterContext) ([]*core.SearchResult, *core.Filters, error) {
	filters, err := e.Classify(ctx, query)
	if err != nil {
		e.logger.Error("error classifying query", "query", query, "err", err)
		return nil, nil, err
	}
	results, err := e.searcher.ApplyFilters(filters, people, fc)
	if err != nil {
		return nil, filters, err
	}
	return results, filters, nil
}
