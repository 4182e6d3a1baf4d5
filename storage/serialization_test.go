package storage

import (
	"testing"

	"github.com/poiesic/smartsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalSource(t *testing.T) {
	tests := []struct {
		name   string
		source *core.Source
	}{
		{
			name:   "name and category",
			source: &core.Source{Name: "Podcast", Category: core.CategoryDigital},
		},
		{
			name: "with description",
			source: &core.Source{
				Name:        "Alumni Network",
				Category:    core.CategoryRelationship,
				Description: "Business school classmates",
			},
		},
		{
			name:   "unicode name",
			source: &core.Source{Name: "Salon de l'Été", Category: core.CategoryEvent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalSource(tt.source)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalSource(data)
			require.NoError(t, err)
			assert.Equal(t, tt.source, decoded)
		})
	}
}

func TestUnmarshalSource_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", MarshalSource(&core.Source{Name: "Webinar", Category: core.CategoryEvent})[:3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSource(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
