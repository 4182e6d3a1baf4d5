package storage

import (
	"context"

	"github.com/poiesic/smartsearch/core"
)

// Repository holds the lifecycle methods shared by all repositories.
type Repository interface {
	// Close releases resources held by the repository.
	// It does not close the shared backend.
	Close() error
}

// SourceRepository persists user-defined acquisition sources.
// The store is append-only: sources are never updated or removed.
type SourceRepository interface {
	Repository

	// AddSource appends a custom source.
	// Returns ErrDuplicateKey if a source with the same name, compared
	// case-insensitively, is already stored.
	AddSource(ctx context.Context, source *core.Source) error

	// GetSources returns every stored source in insertion order.
	GetSources(ctx context.Context) ([]*core.Source, error)

	// FindSource looks a source up by case-insensitive name.
	// Returns ErrNotFound if no source has that name.
	FindSource(ctx context.Context, name string) (*core.Source, error)
}
