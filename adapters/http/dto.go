package http

import (
	"encoding/json"
	"time"

	"github.com/hoangvle/scholarfolio/internal/application/reconcile"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
)

// Profile DTOs

type LanguageDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type ProfileDTO struct {
	Name        string        `json:"name"`
	Position    string        `json:"position"`
	Affiliation string        `json:"affiliation"`
	Nationality string        `json:"nationality"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Mission     string        `json:"mission"`
	Languages   []LanguageDTO `json:"languages"`
	PhotoURL    *string       `json:"photo_url,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name        *string       `json:"name"`
	Position    *string       `json:"position"`
	Affiliation *string       `json:"affiliation"`
	Nationality *string       `json:"nationality"`
	Email       *string       `json:"email"`
	Phone       *string       `json:"phone"`
	Mission     *string       `json:"mission"`
	Languages   []LanguageDTO `json:"languages"`
	PhotoURL    *string       `json:"photo_url"`
}

func (req *UpdateProfileRequest) ToDomainPatch() profile.Patch {
	patch := profile.Patch{
		Name:        req.Name,
		Position:    req.Position,
		Affiliation: req.Affiliation,
		Nationality: req.Nationality,
		Email:       req.Email,
		Phone:       req.Phone,
		Mission:     req.Mission,
		PhotoURL:    req.PhotoURL,
	}
	if req.Languages != nil {
		patch.Languages = make([]profile.Language, len(req.Languages))
		for i, l := range req.Languages {
			patch.Languages[i] = profile.Language(l)
		}
	}
	return patch
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		Name:        p.Name,
		Position:    p.Position,
		Affiliation: p.Affiliation,
		Nationality: p.Nationality,
		Email:       p.Email,
		Phone:       p.Phone,
		Mission:     p.Mission,
		PhotoURL:    p.PhotoURL,
		UpdatedAt:   p.UpdatedAt,
	}
	dto.Languages = make([]LanguageDTO, len(p.Languages))
	for i, l := range p.Languages {
		dto.Languages[i] = LanguageDTO(l)
	}
	return dto
}

// Section DTOs. Content travels in its polymorphic wire shape: a string
// for text, a string array for list, a card array or domain-keyed
// object for cards.

type SectionDTO struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Type    string          `json:"type"`
	Order   int             `json:"order"`
	Visible bool            `json:"visible"`
	Content json.RawMessage `json:"content"`
}

func ToSectionDTO(s *section.Section) (SectionDTO, error) {
	raw, err := section.EncodeContent(s.Type, s.Content)
	if err != nil {
		return SectionDTO{}, err
	}
	return SectionDTO{
		ID:      s.ID,
		Title:   s.Title,
		Type:    string(s.Type),
		Order:   s.Order,
		Visible: s.Visible,
		Content: raw,
	}, nil
}

func ToSectionDTOs(sections []section.Section) ([]SectionDTO, error) {
	dtos := make([]SectionDTO, len(sections))
	for i := range sections {
		dto, err := ToSectionDTO(&sections[i])
		if err != nil {
			return nil, err
		}
		dtos[i] = dto
	}
	return dtos, nil
}

type CreateSectionRequest struct {
	Title   string          `json:"title" binding:"required"`
	Type    string          `json:"type" binding:"required,oneof=text list cards"`
	Visible *bool           `json:"visible"`
	Content json.RawMessage `json:"content"`
}

type UpdateSectionRequest struct {
	Title   *string         `json:"title"`
	Type    *string         `json:"type" binding:"omitempty,oneof=text list cards"`
	Order   *int            `json:"order"`
	Visible *bool           `json:"visible"`
	Content json.RawMessage `json:"content"`
}

type ReorderSectionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// Portfolio DTO (public merged view)

type PortfolioDTO struct {
	Profile  ProfileDTO   `json:"profile"`
	Sections []SectionDTO `json:"sections"`
	Stale    bool         `json:"stale,omitempty"`
}

func ToPortfolioDTO(state reconcile.State, stale bool) (PortfolioDTO, error) {
	sections, err := ToSectionDTOs(state.Sections)
	if err != nil {
		return PortfolioDTO{}, err
	}
	return PortfolioDTO{
		Profile:  ToProfileDTO(&state.Profile),
		Sections: sections,
		Stale:    stale,
	}, nil
}
