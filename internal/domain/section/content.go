package section

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hoangvle/scholarfolio/pkg/apperror"
)

// CardsVariant distinguishes the two recognized cards layouts: a flat
// ordered list of cards, or cards grouped under named domains.
type CardsVariant string

const (
	VariantFlat    CardsVariant = "flat"
	VariantGrouped CardsVariant = "grouped"
)

// CardsVariantFor returns the layout a cards section must use. The
// variant is declared per section id, never inferred from payload
// shape. Only the seeded theses section uses the grouped layout;
// every other id, including sections created at runtime, is flat.
func CardsVariantFor(sectionID string) CardsVariant {
	if sectionID == IDTheses {
		return VariantGrouped
	}
	return VariantFlat
}

// Card is one structured entry in a cards section: a course, a
// publication, a supervised thesis, a project, a responsibility, or a
// competence. Every card carries a stable id and a color gradient tag;
// the remaining fields are set per kind.
type Card struct {
	ID          string   `json:"id"`
	Color       string   `json:"color,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Title       string   `json:"title,omitempty"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description,omitempty"`
	Code        string   `json:"code,omitempty"`
	Level       string   `json:"level,omitempty"`
	Semester    string   `json:"semester,omitempty"`
	Authors     string   `json:"authors,omitempty"`
	Venue       string   `json:"venue,omitempty"`
	Year        int      `json:"year,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	Student     string   `json:"student,omitempty"`
	Degree      string   `json:"degree,omitempty"`
	Role        string   `json:"role,omitempty"`
	Funding     string   `json:"funding,omitempty"`
	Period      string   `json:"period,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// CardGroup is one named domain inside a grouped cards section. Groups
// are kept as an ordered slice, not a map, so render order is stable.
type CardGroup struct {
	Name  string
	Cards []Card
}

type CardsContent struct {
	Variant CardsVariant
	Flat    []Card
	Groups  []CardGroup
}

// Content is the typed holder for a section's payload. Exactly the
// field matching the section's Type is expected to be set.
type Content struct {
	Text  string
	List  []string
	Cards *CardsContent
}

func TextContent(html string) Content {
	return Content{Text: html}
}

func ListContent(items ...string) Content {
	return Content{List: items}
}

func FlatCards(cards ...Card) Content {
	return Content{Cards: &CardsContent{Variant: VariantFlat, Flat: cards}}
}

func GroupedCards(groups ...CardGroup) Content {
	return Content{Cards: &CardsContent{Variant: VariantGrouped, Groups: groups}}
}

func (c Content) Empty() bool {
	return c.Text == "" && c.List == nil && c.Cards == nil
}

// InferType reports the type this holder is shaped as. Used where a
// content payload travels without its section (e.g. inside a patch).
func (c Content) InferType() Type {
	switch {
	case c.Cards != nil:
		return TypeCards
	case c.List != nil:
		return TypeList
	default:
		return TypeText
	}
}

// ValidateContent checks that content structurally conforms to the
// declared type: text sections hold a single rich-text string, list
// sections an ordered string sequence, cards sections the variant
// registered for the section id with unique non-empty card ids.
func ValidateContent(sectionID string, typ Type, c Content) error {
	switch typ {
	case TypeText:
		if c.List != nil || c.Cards != nil {
			return apperror.NewShape(fmt.Sprintf("section %q is text but carries non-text content", sectionID))
		}
		return nil
	case TypeList:
		if c.List == nil {
			return apperror.NewShape(fmt.Sprintf("section %q is list but carries no string sequence", sectionID))
		}
		if c.Text != "" || c.Cards != nil {
			return apperror.NewShape(fmt.Sprintf("section %q is list but carries non-list content", sectionID))
		}
		return nil
	case TypeCards:
		if c.Cards == nil {
			return apperror.NewShape(fmt.Sprintf("section %q is cards but carries no card records", sectionID))
		}
		if c.Text != "" || c.List != nil {
			return apperror.NewShape(fmt.Sprintf("section %q is cards but carries non-cards content", sectionID))
		}
		want := CardsVariantFor(sectionID)
		if c.Cards.Variant != want {
			return apperror.NewShape(fmt.Sprintf("section %q requires %s cards, got %s", sectionID, want, c.Cards.Variant))
		}
		return validateCardIDs(sectionID, c.Cards)
	default:
		return apperror.NewShape(fmt.Sprintf("section %q has unknown type %q", sectionID, typ))
	}
}

func validateCardIDs(sectionID string, cc *CardsContent) error {
	seen := make(map[string]struct{})
	check := func(cards []Card) error {
		for _, card := range cards {
			if card.ID == "" {
				return apperror.NewShape(fmt.Sprintf("section %q has a card without id", sectionID))
			}
			if _, dup := seen[card.ID]; dup {
				return apperror.NewShape(fmt.Sprintf("section %q has duplicate card id %q", sectionID, card.ID))
			}
			seen[card.ID] = struct{}{}
		}
		return nil
	}

	if cc.Variant == VariantGrouped {
		for _, g := range cc.Groups {
			if err := check(g.Cards); err != nil {
				return err
			}
		}
		return nil
	}
	return check(cc.Flat)
}

// EncodeContent renders content into its wire shape: a JSON string for
// text, a string array for list, a card array or domain-keyed object
// for cards. This is the shape stored in the content JSONB column and
// sent over the gateway API.
func EncodeContent(typ Type, c Content) ([]byte, error) {
	switch typ {
	case TypeText:
		return json.Marshal(c.Text)
	case TypeList:
		if c.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(c.List)
	case TypeCards:
		if c.Cards == nil {
			return json.Marshal([]Card{})
		}
		if c.Cards.Variant == VariantGrouped {
			return encodeGroups(c.Cards.Groups)
		}
		return json.Marshal(c.Cards.Flat)
	default:
		return nil, apperror.NewShape(fmt.Sprintf("cannot encode content of unknown type %q", typ))
	}
}

func encodeGroups(groups []CardGroup) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		cards := g.Cards
		if cards == nil {
			cards = []Card{}
		}
		val, err := json.Marshal(cards)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeContent parses a wire payload against the declared type. The
// cards variant comes from the section id registry, so a flat array in
// a grouped section (or vice versa) is a shape error, not a guess.
func DecodeContent(sectionID string, typ Type, raw []byte) (Content, error) {
	var c Content
	switch typ {
	case TypeText:
		if err := json.Unmarshal(raw, &c.Text); err != nil {
			return Content{}, apperror.NewShape(fmt.Sprintf("section %q text content is not a JSON string", sectionID))
		}
		return c, nil
	case TypeList:
		if err := json.Unmarshal(raw, &c.List); err != nil {
			return Content{}, apperror.NewShape(fmt.Sprintf("section %q list content is not a JSON string array", sectionID))
		}
		if c.List == nil {
			c.List = []string{}
		}
		return c, nil
	case TypeCards:
		cc, err := decodeCards(sectionID, raw)
		if err != nil {
			return Content{}, err
		}
		c.Cards = cc
		return c, nil
	default:
		return Content{}, apperror.NewShape(fmt.Sprintf("section %q has unknown type %q", sectionID, typ))
	}
}

func decodeCards(sectionID string, raw []byte) (*CardsContent, error) {
	if CardsVariantFor(sectionID) == VariantGrouped {
		groups, err := decodeGroups(raw)
		if err != nil {
			return nil, apperror.NewShape(fmt.Sprintf("section %q cards content is not a domain-keyed object: %v", sectionID, err))
		}
		return &CardsContent{Variant: VariantGrouped, Groups: groups}, nil
	}

	var flat []Card
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, apperror.NewShape(fmt.Sprintf("section %q cards content is not a card array", sectionID))
	}
	if flat == nil {
		flat = []Card{}
	}
	return &CardsContent{Variant: VariantFlat, Flat: flat}, nil
}

// decodeGroups walks the object token by token so the original key
// order survives; unmarshalling into a map would scramble it.
func decodeGroups(raw []byte) ([]CardGroup, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	groups := make([]CardGroup, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}
		var cards []Card
		if err := dec.Decode(&cards); err != nil {
			return nil, err
		}
		if cards == nil {
			cards = []Card{}
		}
		groups = append(groups, CardGroup{Name: key, Cards: cards})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return groups, nil
}

// Wire form of a section as exchanged with the gateway API. Visible
// defaults to true when absent so sparse stored records stay shown.
type wireSection struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Type    Type            `json:"type"`
	Order   int             `json:"order"`
	Visible *bool           `json:"visible,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	raw, err := EncodeContent(s.Type, s.Content)
	if err != nil {
		return nil, err
	}
	visible := s.Visible
	return json.Marshal(wireSection{
		ID:      s.ID,
		Title:   s.Title,
		Type:    s.Type,
		Order:   s.Order,
		Visible: &visible,
		Content: raw,
	})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var w wireSection
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.ID = w.ID
	s.Title = w.Title
	s.Type = w.Type
	s.Order = w.Order
	s.Visible = true
	if w.Visible != nil {
		s.Visible = *w.Visible
	}
	s.Content = Content{}
	if len(w.Content) > 0 && !bytes.Equal(w.Content, []byte("null")) {
		c, err := DecodeContent(w.ID, w.Type, w.Content)
		if err != nil {
			return err
		}
		s.Content = c
	}
	return nil
}
