package sources

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/storage"
)

// Registry combines the default catalog with persisted custom sources.
// It is safe for concurrent use; additions are serialized.
type Registry struct {
	repo   storage.SourceRepository
	mu     sync.RWMutex
	custom []core.Source
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry loads custom sources from repo. A nil repo gives a registry
// whose custom sources live only in memory.
func NewRegistry(ctx context.Context, repo storage.SourceRepository, opts ...Option) (*Registry, error) {
	r := &Registry{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if repo != nil {
		stored, err := repo.GetSources(ctx)
		if err != nil {
			r.logger.Error("error loading custom sources", "err", err)
			return nil, err
		}
		for _, s := range stored {
			// Entries shadowed by a later catalog addition are ignored.
			if lookup(s.Name, [][]core.Source{defaultSources, r.custom}) != nil {
				r.logger.Warn("skipping custom source shadowed by existing name", "name", s.Name)
				continue
			}
			r.custom = append(r.custom, *s)
		}
	}
	r.logger.Debug("source registry ready", "defaults", len(defaultSources), "custom", len(r.custom))
	return r, nil
}

// Resolve maps a free-text source value onto a known Source.
//
// Matching is case-insensitive against the default catalog, then custom
// sources, then both again with underscores read as spaces. Anything else
// resolves to a synthetic source named raw in the "other" category. An
// empty value resolves to nil.
func (r *Registry) Resolve(raw string) *core.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolve(raw, defaultSources, r.custom)
}

// All returns the default catalog followed by custom sources.
func (r *Registry) All() []core.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Source, 0, len(defaultSources)+len(r.custom))
	out = append(out, defaultSources...)
	return append(out, r.custom...)
}

// Custom returns the user-added sources in insertion order.
func (r *Registry) Custom() []core.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Source, len(r.custom))
	copy(out, r.custom)
	return out
}

// AddCustom appends a user-defined source. It returns nil without storing
// anything when the name collides with an existing source. Invalid sources
// and storage failures are returned as errors.
func (r *Registry) AddCustom(ctx context.Context, source core.Source) error {
	source.Name = strings.TrimSpace(source.Name)
	if err := core.ValidateSource(&source); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lookup(source.Name, [][]core.Source{defaultSources, r.custom}) != nil {
		r.logger.Debug("ignoring duplicate source", "name", source.Name)
		return nil
	}

	if r.repo != nil {
		err := r.repo.AddSource(ctx, &source)
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Another registry on the same store got there first; pick up
			// its copy so this one sees the same catalog.
			r.logger.Debug("source already stored", "name", source.Name)
			if stored, findErr := r.repo.FindSource(ctx, source.Name); findErr == nil {
				r.custom = append(r.custom, *stored)
			}
			return nil
		}
		if err != nil {
			r.logger.Error("error storing custom source", "name", source.Name, "err", err)
			return err
		}
	}

	r.custom = append(r.custom, source)
	return nil
}
