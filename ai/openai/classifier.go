// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/smartsearch/ai"
	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/sources"
)

// SourceLister supplies the source catalog quoted in the system prompt.
// *sources.Registry implements it.
type SourceLister interface {
	All() []core.Source
}

type defaultCatalog struct{}

func (defaultCatalog) All() []core.Source { return sources.Defaults() }

// Classifier implements ai.FilterClassifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client      llms.Model
	catalog     SourceLister
	maxAttempts int
	logger      *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "openai-classifier")
		return nil
	}
}

// WithSourceCatalog sets where known sources are read from each time a
// prompt is built. Default is the built-in catalog.
func WithSourceCatalog(catalog SourceLister) ClassifierOption {
	return func(c *Classifier) error {
		if catalog == nil {
			catalog = defaultCatalog{}
		}
		c.catalog = catalog
		return nil
	}
}

// newClassifier is an internal constructor that returns the concrete type.
// A nil client is replaced by an OpenAI client built from config.
func newClassifier(config *ai.Config, client llms.Model, opts ...ClassifierOption) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if client == nil {
		llm, err := openai.New(
			openai.WithBaseURL(config.ClassifierHost),
			openai.WithToken(config.APIToken),
			openai.WithModel(config.ClassifierModel),
		)
		if err != nil {
			return nil, err
		}
		client = llm
	}

	c := &Classifier{
		client:      client,
		catalog:     defaultCatalog{},
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-classifier"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewClassifier creates a new filter classifier using the provided configuration.
//
// Returns ai.FilterClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config, opts ...ClassifierOption) (ai.FilterClassifier, error) {
	return newClassifier(config, nil, opts...)
}

// Classify asks the model for the filters implied by query.
//
// Malformed output is re-requested up to the configured number of attempts
// and then reported wrapping ai.ErrMalformedResponse. Transport errors are
// returned immediately. A blank query yields empty filters without a call.
func (c *Classifier) Classify(ctx context.Context, query string) (*core.Filters, error) {
	query = normalizeQuery(query)
	if query == "" {
		return &core.Filters{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(c.catalog.All())),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			lastErr = errors.New("no choices returned from model")
			c.logger.Warn("empty classifier response", "attempt", attempt+1)
			continue
		}

		filters, err := parseFilters(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		if err := core.ValidateFilters(filters); err != nil {
			c.logger.Error("classifier returned invalid filters", "query", query, "err", err)
			return nil, err
		}

		c.logger.Debug("classified query", "query", query, "attempts", attempt+1)
		return filters, nil
	}

	c.logger.Error("failed to parse classifier response", "attempts", c.maxAttempts, "err", lastErr)
	return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, lastErr)
}

// parseFilters decodes a model response into filters, tolerating markdown
// fences and the JSON mistakes repairJSON knows how to fix.
func parseFilters(text string) (*core.Filters, error) {
	text = repairJSON(stripCodeFences(text))
	if text == "" {
		return nil, errors.New("empty response")
	}

	var filters core.Filters
	if err := json.Unmarshal([]byte(text), &filters); err != nil {
		return nil, err
	}

	filters.Name = strings.TrimSpace(filters.Name)
	filters.Company = strings.TrimSpace(filters.Company)
	filters.Title = strings.TrimSpace(filters.Title)
	filters.Source = strings.TrimSpace(filters.Source)
	filters.Location = strings.TrimSpace(filters.Location)
	filters.Email = strings.TrimSpace(filters.Email)
	filters.OrgSector = strings.TrimSpace(filters.OrgSector)
	filters.Tags = compact(filters.Tags)
	filters.OrgKind = compact(filters.OrgKind)
	return &filters, nil
}

// compact trims entries and drops blank ones. Blank entries would
// otherwise fail validation for an output the model meant as empty.
func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
