package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Language is one spoken language shown on the profile, with the
// display color tag used by the renderer.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Profile struct {
	Name        string     `json:"name"`
	Position    string     `json:"position"`
	Affiliation string     `json:"affiliation"`
	Nationality string     `json:"nationality"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Mission     string     `json:"mission"`
	Languages   []Language `json:"languages"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Patch carries a partial profile update. Nil fields are left untouched.
type Patch struct {
	Name        *string    `json:"name,omitempty"`
	Position    *string    `json:"position,omitempty"`
	Affiliation *string    `json:"affiliation,omitempty"`
	Nationality *string    `json:"nationality,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Mission     *string    `json:"mission,omitempty"`
	Languages   []Language `json:"languages,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
}

func (p Patch) Apply(target *Profile) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Position != nil {
		target.Position = *p.Position
	}
	if p.Affiliation != nil {
		target.Affiliation = *p.Affiliation
	}
	if p.Nationality != nil {
		target.Nationality = *p.Nationality
	}
	if p.Email != nil {
		target.Email = *p.Email
	}
	if p.Phone != nil {
		target.Phone = *p.Phone
	}
	if p.Mission != nil {
		target.Mission = *p.Mission
	}
	if p.Languages != nil {
		target.Languages = p.Languages
	}
	if p.PhotoURL != nil {
		target.PhotoURL = p.PhotoURL
	}
}

// Overlay merges remote onto base, remote winning per set field. Zero-valued
// remote fields keep the base value so a sparse stored profile never erases
// baseline identity data.
func Overlay(base, remote Profile) Profile {
	out := base
	if remote.Name != "" {
		out.Name = remote.Name
	}
	if remote.Position != "" {
		out.Position = remote.Position
	}
	if remote.Affiliation != "" {
		out.Affiliation = remote.Affiliation
	}
	if remote.Nationality != "" {
		out.Nationality = remote.Nationality
	}
	if remote.Email != "" {
		out.Email = remote.Email
	}
	if remote.Phone != "" {
		out.Phone = remote.Phone
	}
	if remote.Mission != "" {
		out.Mission = remote.Mission
	}
	if len(remote.Languages) > 0 {
		out.Languages = remote.Languages
	}
	if remote.PhotoURL != nil {
		out.PhotoURL = remote.PhotoURL
	}
	if !remote.UpdatedAt.IsZero() {
		out.UpdatedAt = remote.UpdatedAt
	}
	return out
}

type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, p *Profile) error
}
