package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/poiesic/smartsearch/ai"
	"github.com/poiesic/smartsearch/core"
)

// scriptedModel replays canned responses, one per GenerateContent call.
type scriptedModel struct {
	responses []string
	err       error
	calls     int
	options   llms.CallOptions
	messages  []llms.MessageContent
}

func (m *scriptedModel) GenerateContent(_ context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	m.messages = messages
	for _, opt := range options {
		opt(&m.options)
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &llms.ContentResponse{}, nil
	}
	content := m.responses[0]
	m.responses = m.responses[1:]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}, nil
}

func (m *scriptedModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

type staticCatalog []core.Source

func (c staticCatalog) All() []core.Source { return c }

func newTestClassifier(t *testing.T, model *scriptedModel, attempts int, opts ...ClassifierOption) *Classifier {
	t.Helper()
	cfg := ai.NewConfig(ai.WithMaxAttempts(attempts))
	c, err := newClassifier(cfg, model, opts...)
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"```json\n{\"company\": \"Blackstone\", \"warmth\": [2, 3]}\n```",
	}}
	c := newTestClassifier(t, model, 1)

	filters, err := c.Classify(context.Background(), "  hot   contacts at Blackstone ")
	require.NoError(t, err)
	assert.Equal(t, &core.Filters{Company: "Blackstone", Warmth: []int{2, 3}}, filters)

	assert.Equal(t, 1, model.calls)
	assert.True(t, model.options.JSONMode)
	assert.Equal(t, 0.0, model.options.Temperature)
	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.TextPart("hot contacts at Blackstone"), model.messages[1].Parts[0])
}

func TestClassify_RepairsJSON(t *testing.T) {
	model := &scriptedModel{responses: []string{
		`{title": "partner", tags: ["lp", " ",], addedWithinDays: 30,}`,
	}}
	c := newTestClassifier(t, model, 1)

	filters, err := c.Classify(context.Background(), "partners tagged lp added this month")
	require.NoError(t, err)
	require.NotNil(t, filters.AddedWithinDays)
	assert.Equal(t, 30, *filters.AddedWithinDays)
	assert.Equal(t, "partner", filters.Title)
	assert.Equal(t, []string{"lp"}, filters.Tags)
}

func TestClassify_MalformedResponse(t *testing.T) {
	t.Run("single attempt by default", func(t *testing.T) {
		model := &scriptedModel{responses: []string{"I think you mean Blackstone", `{"company":"Blackstone"}`}}
		c := newTestClassifier(t, model, 1)

		_, err := c.Classify(context.Background(), "blackstone people")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
		assert.Equal(t, 1, model.calls)
	})

	t.Run("retries only malformed output", func(t *testing.T) {
		model := &scriptedModel{responses: []string{"not json", `{"company":"Blackstone"}`}}
		c := newTestClassifier(t, model, 3)

		filters, err := c.Classify(context.Background(), "blackstone people")
		require.NoError(t, err)
		assert.Equal(t, "Blackstone", filters.Company)
		assert.Equal(t, 2, model.calls)
	})

	t.Run("no choices", func(t *testing.T) {
		model := &scriptedModel{}
		c := newTestClassifier(t, model, 2)

		_, err := c.Classify(context.Background(), "anyone")
		assert.ErrorIs(t, err, ai.ErrMalformedResponse)
		assert.Equal(t, 2, model.calls)
	})
}

func TestClassify_TransportErrorNotRetried(t *testing.T) {
	boom := errors.New("connection refused")
	model := &scriptedModel{err: boom}
	c := newTestClassifier(t, model, 3)

	_, err := c.Classify(context.Background(), "anyone")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, model.calls)
}

func TestClassify_InvalidFilters(t *testing.T) {
	model := &scriptedModel{responses: []string{`{"warmth":[5]}`, `{"warmth":[1]}`}}
	c := newTestClassifier(t, model, 3)

	_, err := c.Classify(context.Background(), "very hot")
	assert.ErrorIs(t, err, core.ErrInvalidFilters)
	assert.Equal(t, 1, model.calls)
}

func TestClassify_BlankQuery(t *testing.T) {
	model := &scriptedModel{}
	c := newTestClassifier(t, model, 1)

	filters, err := c.Classify(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, &core.Filters{}, filters)
	assert.Zero(t, model.calls)
}

func TestClassify_PromptListsCatalog(t *testing.T) {
	model := &scriptedModel{responses: []string{`{}`}}
	catalog := staticCatalog{
		{Name: "Referral", Category: core.CategoryRelationship},
		{Name: "Podcast", Category: core.CategoryDigital},
	}
	c := newTestClassifier(t, model, 1, WithSourceCatalog(catalog), WithLogger(nil))

	_, err := c.Classify(context.Background(), "podcast guests")
	require.NoError(t, err)

	system, ok := model.messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, system.Text, "- Relationship: Referral")
	assert.Contains(t, system.Text, "- Digital: Podcast")
	assert.NotContains(t, system.Text, "- Event:")
	assert.Contains(t, system.Text, "2 = Hot")
}

func TestNewClassifier_InvalidConfig(t *testing.T) {
	_, err := NewClassifier(&ai.Config{ClassifierHost: "http://localhost:11434"})
	assert.Error(t, err)
}

func TestBuildSystemPrompt_DefaultCatalog(t *testing.T) {
	prompt := buildSystemPrompt(defaultCatalog{}.All())
	assert.Contains(t, prompt, "Cold Outreach, Cold Email, Cold Call")
	assert.Contains(t, prompt, "0 = Cold, 1 = Warm, 2 = Hot, 3 = Champion")
}
