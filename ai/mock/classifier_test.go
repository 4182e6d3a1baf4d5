package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/smartsearch/core"
)

func TestMockClassifier(t *testing.T) {
	m := NewMockClassifier()
	m.Responses["hot at blackstone"] = &core.Filters{Company: "Blackstone", Warmth: []int{2}}

	filters, err := m.Classify(context.Background(), "  Hot at Blackstone ")
	require.NoError(t, err)
	assert.Equal(t, "Blackstone", filters.Company)

	filters.Company = "changed"
	again, err := m.Classify(context.Background(), "hot at blackstone")
	require.NoError(t, err)
	assert.Equal(t, "Blackstone", again.Company)

	unknown, err := m.Classify(context.Background(), "who knows")
	require.NoError(t, err)
	assert.Equal(t, &core.Filters{}, unknown)

	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, []string{"  Hot at Blackstone ", "hot at blackstone", "who knows"}, m.Queries())

	m.Reset()
	assert.Zero(t, m.CallCount())
}

func TestMockClassifier_Func(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockClassifier()
	m.ClassifyFunc = func(context.Context, string) (*core.Filters, error) { return nil, boom }

	_, err := m.Classify(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestMockProvider(t *testing.T) {
	classifier := NewMockClassifier()
	p := NewMockProviderWithClassifier(classifier)
	assert.Same(t, classifier, p.Classifier())
	require.NoError(t, p.Close())
	assert.True(t, p.(*MockProvider).Closed())
}
