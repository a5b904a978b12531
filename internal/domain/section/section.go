package section

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// Type is the structural kind of a section's content.
type Type string

const (
	TypeText  Type = "text"
	TypeList  Type = "list"
	TypeCards Type = "cards"
)

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeList, TypeCards:
		return true
	}
	return false
}

// Well-known section ids. These are the merge keys between the default
// baseline and stored content, so they must never change.
const (
	IDAbout            = "about"
	IDResearch         = "research-interests"
	IDCourses          = "courses"
	IDPublications     = "publications"
	IDTheses           = "theses"
	IDProjects         = "projects"
	IDResponsibilities = "responsibilities"
	IDCompetences      = "competences"
)

// Section is one named, orderable, visibility-toggleable block of
// portfolio content. ID is a stable slug unique within the collection.
type Section struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Type    Type    `json:"type"`
	Order   int     `json:"order"`
	Visible bool    `json:"visible"`
	Content Content `json:"-"`
}

var (
	ErrEmptyID      = errors.New("section id is required")
	ErrEmptyTitle   = errors.New("section title is required")
	ErrUnknownType  = errors.New("unknown section type")
	ErrNotFound     = errors.New("section not found")
	ErrDuplicateCID = errors.New("duplicate card id within section")
)

func (s *Section) Validate() error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if s.Title == "" {
		return ErrEmptyTitle
	}
	if !s.Type.Valid() {
		return ErrUnknownType
	}
	return ValidateContent(s.ID, s.Type, s.Content)
}

// Patch carries a partial section update. Nil fields are left untouched.
// A content patch must match the section's (possibly patched) type.
type Patch struct {
	Title   *string
	Type    *Type
	Order   *int
	Visible *bool
	Content *Content
}

func (p Patch) Apply(s *Section) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Order != nil {
		s.Order = *p.Order
	}
	if p.Visible != nil {
		s.Visible = *p.Visible
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
}

// EffectiveType is the type the patched section would have, used to
// decode and validate a content payload carried by the patch.
func (p Patch) EffectiveType(current Type) Type {
	if p.Type != nil {
		return *p.Type
	}
	return current
}

// Overlay merges a stored section onto its default counterpart, stored
// fields winning. Empty title, zero order, and empty content keep the
// default values so a sparse stored record never hollows out a section.
// Visible is taken from the stored record (decoding defaults it to true
// when the field is absent).
func Overlay(def, stored Section) Section {
	out := def
	if stored.Title != "" {
		out.Title = stored.Title
	}
	if stored.Type.Valid() {
		out.Type = stored.Type
	}
	if stored.Order != 0 {
		out.Order = stored.Order
	}
	out.Visible = stored.Visible
	if !stored.Content.Empty() {
		out.Content = stored.Content
	}
	return out
}

// SortStable orders sections by Order, ties keeping insertion order.
func SortStable(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}

type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Section, error)
	FindByID(ctx context.Context, ownerID uuid.UUID, id string) (*Section, error)
	Save(ctx context.Context, ownerID uuid.UUID, s *Section) error
	Update(ctx context.Context, ownerID uuid.UUID, s *Section) error
	Delete(ctx context.Context, ownerID uuid.UUID, id string) error
	ReorderAll(ctx context.Context, ownerID uuid.UUID, orderedIDs []string) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
