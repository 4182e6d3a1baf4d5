package ai

import (
	"context"

	"github.com/poiesic/smartsearch/core"
)

// FilterClassifier turns a natural-language query into structured filters.
// Implementations must be thread-safe for concurrent use.
type FilterClassifier interface {
	// Classify interprets query and returns the filters it implies.
	// Returned filters have passed core.ValidateFilters.
	// Transport failures are returned as-is; unparseable output wraps
	// ErrMalformedResponse and invalid filter shapes wrap
	// core.ErrInvalidFilters.
	Classify(ctx context.Context, query string) (*core.Filters, error)
}

// Provider manages the lifecycle of AI services sharing one configuration.
type Provider interface {
	// Classifier returns the filter classification service.
	// The returned FilterClassifier is safe for concurrent use.
	Classifier() FilterClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
