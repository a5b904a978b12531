package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionValidate(t *testing.T) {
	valid := Section{ID: "custom", Title: "Custom", Type: TypeText, Order: 9, Visible: true}
	assert.NoError(t, valid.Validate())

	noID := valid
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrEmptyID)

	noTitle := valid
	noTitle.Title = ""
	assert.ErrorIs(t, noTitle.Validate(), ErrEmptyTitle)

	badType := valid
	badType.Type = "gallery"
	assert.ErrorIs(t, badType.Validate(), ErrUnknownType)
}

func TestPatchApply(t *testing.T) {
	s := Section{ID: "about", Title: "About", Type: TypeText, Order: 1, Visible: true, Content: TextContent("old")}

	title := "About Me"
	hidden := false
	content := TextContent("new")
	Patch{Title: &title, Visible: &hidden, Content: &content}.Apply(&s)

	assert.Equal(t, "About Me", s.Title)
	assert.False(t, s.Visible)
	assert.Equal(t, "new", s.Content.Text)
	// Untouched fields keep their values.
	assert.Equal(t, TypeText, s.Type)
	assert.Equal(t, 1, s.Order)
}

func TestPatchEffectiveType(t *testing.T) {
	assert.Equal(t, TypeText, Patch{}.EffectiveType(TypeText))

	newType := TypeList
	assert.Equal(t, TypeList, Patch{Type: &newType}.EffectiveType(TypeText))
}

func TestOverlay(t *testing.T) {
	def := Section{ID: "about", Title: "About", Type: TypeText, Order: 1, Visible: true, Content: TextContent("default")}

	stored := Section{ID: "about", Title: "About Me", Type: TypeText, Order: 3, Visible: false, Content: TextContent("stored")}
	out := Overlay(def, stored)
	assert.Equal(t, "About Me", out.Title)
	assert.Equal(t, 3, out.Order)
	assert.False(t, out.Visible)
	assert.Equal(t, "stored", out.Content.Text)

	// A sparse stored record keeps the default title, order and content,
	// but its visibility still wins.
	sparse := Section{ID: "about", Visible: false}
	out = Overlay(def, sparse)
	assert.Equal(t, "About", out.Title)
	assert.Equal(t, 1, out.Order)
	assert.False(t, out.Visible)
	assert.Equal(t, "default", out.Content.Text)
}

func TestSortStable(t *testing.T) {
	sections := []Section{
		{ID: "c", Order: 2},
		{ID: "a", Order: 1},
		{ID: "d", Order: 2},
		{ID: "b", Order: 1},
	}
	SortStable(sections)

	got := make([]string, len(sections))
	for i, s := range sections {
		got[i] = s.ID
	}
	// Ties keep insertion order.
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}
