package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the portfolio owner's admin account. A deployment holds
// exactly one in practice, seeded by scripts/seed_owner.go.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
