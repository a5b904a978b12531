package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvle/scholarfolio/internal/domain/section"
)

func TestSections_Baseline(t *testing.T) {
	sections := Sections()
	require.Len(t, sections, 8)

	seen := make(map[string]struct{})
	for i, s := range sections {
		assert.NoErrorf(t, s.Validate(), "default section %q must be valid", s.ID)
		assert.Truef(t, s.Visible, "default section %q must be visible", s.ID)
		assert.Equalf(t, i+1, s.Order, "default section %q order", s.ID)

		_, dup := seen[s.ID]
		assert.Falsef(t, dup, "duplicate default section id %q", s.ID)
		seen[s.ID] = struct{}{}
	}
}

func TestSections_ThesesAreGrouped(t *testing.T) {
	for _, s := range Sections() {
		if s.ID != section.IDTheses {
			continue
		}
		require.NotNil(t, s.Content.Cards)
		assert.Equal(t, section.VariantGrouped, s.Content.Cards.Variant)
		assert.NotEmpty(t, s.Content.Cards.Groups)
		return
	}
	t.Fatal("theses section missing from defaults")
}

func TestSections_FreshValuePerCall(t *testing.T) {
	first := Sections()
	first[0].Title = "mutated"
	first[2].Content.Cards.Flat[0].Title = "mutated card"

	second := Sections()
	assert.Equal(t, "About", second[0].Title)
	assert.NotEqual(t, "mutated card", second[2].Content.Cards.Flat[0].Title)
}

func TestProfile_FreshValuePerCall(t *testing.T) {
	first := Profile()
	require.NotEmpty(t, first.Name)
	require.NotEmpty(t, first.Languages)

	first.Languages[0].Name = "mutated"
	second := Profile()
	assert.NotEqual(t, "mutated", second.Languages[0].Name)
}
