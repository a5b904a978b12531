package section

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvle/scholarfolio/pkg/apperror"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name      string
		sectionID string
		typ       Type
		content   Content
		wantErr   bool
	}{
		{
			name:      "text accepts a plain string",
			sectionID: IDAbout,
			typ:       TypeText,
			content:   TextContent("<p>hello</p>"),
		},
		{
			name:      "text accepts empty content",
			sectionID: IDAbout,
			typ:       TypeText,
			content:   Content{},
		},
		{
			name:      "text rejects a list payload",
			sectionID: IDAbout,
			typ:       TypeText,
			content:   ListContent("a", "b"),
			wantErr:   true,
		},
		{
			name:      "list accepts a string sequence",
			sectionID: IDResearch,
			typ:       TypeList,
			content:   ListContent("topic one", "topic two"),
		},
		{
			name:      "list rejects missing sequence",
			sectionID: IDResearch,
			typ:       TypeList,
			content:   Content{},
			wantErr:   true,
		},
		{
			name:      "list rejects a cards payload",
			sectionID: IDResearch,
			typ:       TypeList,
			content:   Content{List: []string{"x"}, Cards: &CardsContent{Variant: VariantFlat}},
			wantErr:   true,
		},
		{
			name:      "flat cards accepted on a flat section",
			sectionID: IDCourses,
			typ:       TypeCards,
			content:   FlatCards(Card{ID: "c1", Title: "Course"}),
		},
		{
			name:      "flat cards rejected on the grouped section",
			sectionID: IDTheses,
			typ:       TypeCards,
			content:   FlatCards(Card{ID: "c1"}),
			wantErr:   true,
		},
		{
			name:      "grouped cards accepted on the grouped section",
			sectionID: IDTheses,
			typ:       TypeCards,
			content: GroupedCards(CardGroup{
				Name:  "Data Management",
				Cards: []Card{{ID: "t1"}},
			}),
		},
		{
			name:      "grouped cards rejected on a flat section",
			sectionID: IDProjects,
			typ:       TypeCards,
			content:   GroupedCards(CardGroup{Name: "G", Cards: []Card{{ID: "p1"}}}),
			wantErr:   true,
		},
		{
			name:      "card without id rejected",
			sectionID: IDCourses,
			typ:       TypeCards,
			content:   FlatCards(Card{Title: "anonymous"}),
			wantErr:   true,
		},
		{
			name:      "duplicate card ids rejected",
			sectionID: IDCourses,
			typ:       TypeCards,
			content:   FlatCards(Card{ID: "dup"}, Card{ID: "dup"}),
			wantErr:   true,
		},
		{
			name:      "duplicate card ids rejected across groups",
			sectionID: IDTheses,
			typ:       TypeCards,
			content: GroupedCards(
				CardGroup{Name: "A", Cards: []Card{{ID: "dup"}}},
				CardGroup{Name: "B", Cards: []Card{{ID: "dup"}}},
			),
			wantErr: true,
		},
		{
			name:      "unknown type rejected",
			sectionID: IDAbout,
			typ:       Type("gallery"),
			content:   Content{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.sectionID, tt.typ, tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrShape)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEncodeContent_WireShapes(t *testing.T) {
	raw, err := EncodeContent(TypeText, TextContent("<p>hi</p>"))
	require.NoError(t, err)
	assert.JSONEq(t, `"<p>hi</p>"`, string(raw))

	raw, err = EncodeContent(TypeList, ListContent("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(raw))

	raw, err = EncodeContent(TypeList, Content{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	raw, err = EncodeContent(TypeCards, FlatCards(Card{ID: "c1", Title: "T"}))
	require.NoError(t, err)
	var arr []map[string]any
	require.NoError(t, json.Unmarshal(raw, &arr))
	require.Len(t, arr, 1)
	assert.Equal(t, "c1", arr[0]["id"])

	raw, err = EncodeContent(TypeCards, GroupedCards(
		CardGroup{Name: "Zeta", Cards: []Card{{ID: "z1"}}},
		CardGroup{Name: "Alpha", Cards: []Card{{ID: "a1"}}},
	))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zeta":[{"id":"z1"}],"Alpha":[{"id":"a1"}]}`, string(raw))
}

func TestDecodeContent_GroupOrderSurvives(t *testing.T) {
	// Keys deliberately not alphabetical: order must come from the
	// document, not from map iteration.
	raw := []byte(`{"Stream Processing":[{"id":"t2"}],"Data Management":[{"id":"t1"}]}`)

	c, err := DecodeContent(IDTheses, TypeCards, raw)
	require.NoError(t, err)
	require.NotNil(t, c.Cards)
	assert.Equal(t, VariantGrouped, c.Cards.Variant)
	require.Len(t, c.Cards.Groups, 2)
	assert.Equal(t, "Stream Processing", c.Cards.Groups[0].Name)
	assert.Equal(t, "Data Management", c.Cards.Groups[1].Name)
}

func TestDecodeContent_ShapeErrors(t *testing.T) {
	_, err := DecodeContent(IDAbout, TypeText, []byte(`["not","a","string"]`))
	assert.ErrorIs(t, err, apperror.ErrShape)

	_, err = DecodeContent(IDResearch, TypeList, []byte(`"just text"`))
	assert.ErrorIs(t, err, apperror.ErrShape)

	// Flat array where the id registry demands groups.
	_, err = DecodeContent(IDTheses, TypeCards, []byte(`[{"id":"t1"}]`))
	assert.ErrorIs(t, err, apperror.ErrShape)

	// Grouped object where the id registry demands a flat array.
	_, err = DecodeContent(IDCourses, TypeCards, []byte(`{"Group":[{"id":"c1"}]}`))
	assert.ErrorIs(t, err, apperror.ErrShape)
}

func TestDecodeContent_RoundTrip(t *testing.T) {
	orig := GroupedCards(
		CardGroup{Name: "Data Management", Cards: []Card{{ID: "t1", Student: "A", Degree: "MSc", Year: 2024}}},
		CardGroup{Name: "Stream Processing", Cards: []Card{{ID: "t2", Student: "B", Degree: "PhD"}}},
	)

	raw, err := EncodeContent(TypeCards, orig)
	require.NoError(t, err)

	back, err := DecodeContent(IDTheses, TypeCards, raw)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func TestSectionJSON_VisibleDefaultsTrue(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"id":"about","title":"About","type":"text","order":1,"content":"<p>x</p>"}`), &s)
	require.NoError(t, err)
	assert.True(t, s.Visible)
	assert.Equal(t, "<p>x</p>", s.Content.Text)

	err = json.Unmarshal([]byte(`{"id":"about","title":"About","type":"text","order":1,"visible":false,"content":"<p>x</p>"}`), &s)
	require.NoError(t, err)
	assert.False(t, s.Visible)
}

func TestSectionJSON_NullContentIsEmpty(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"id":"about","title":"About","type":"text","order":1,"content":null}`), &s)
	require.NoError(t, err)
	assert.True(t, s.Content.Empty())
}

func TestSectionJSON_MarshalCarriesWireContent(t *testing.T) {
	s := Section{
		ID:      IDResearch,
		Title:   "Research Interests",
		Type:    TypeList,
		Order:   2,
		Visible: true,
		Content: ListContent("a", "b"),
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"research-interests","title":"Research Interests","type":"list","order":2,"visible":true,"content":["a","b"]}`, string(raw))

	var back Section
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s, back)
}

func TestCardsVariantFor(t *testing.T) {
	assert.Equal(t, VariantGrouped, CardsVariantFor(IDTheses))
	assert.Equal(t, VariantFlat, CardsVariantFor(IDCourses))
	// Ids outside the baseline, including runtime-created sections,
	// always get the flat layout.
	assert.Equal(t, VariantFlat, CardsVariantFor("awards"))
	assert.Equal(t, VariantFlat, CardsVariantFor(""))
}

func TestContentInferType(t *testing.T) {
	assert.Equal(t, TypeText, Content{}.InferType())
	assert.Equal(t, TypeText, TextContent("x").InferType())
	assert.Equal(t, TypeList, ListContent().InferType())
	assert.Equal(t, TypeCards, FlatCards().InferType())
}
