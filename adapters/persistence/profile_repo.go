package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

// GetByOwner returns (nil, nil) when nothing is stored yet: the caller
// reconciles against the default baseline in that case.
func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT name, position, affiliation, nationality, email, phone, mission, languages, photo_url, updated_at
		FROM profiles
		WHERE owner_id = $1
	`
	p := &profile.Profile{}
	var languagesBytes []byte

	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&p.Name,
		&p.Position,
		&p.Affiliation,
		&p.Nationality,
		&p.Email,
		&p.Phone,
		&p.Mission,
		&languagesBytes,
		&p.PhotoURL,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if len(languagesBytes) > 0 {
		if err := json.Unmarshal(languagesBytes, &p.Languages); err != nil {
			r.logger.Warn("Failed to unmarshal languages", zap.String("owner_id", ownerID.String()), zap.Error(err))
			p.Languages = nil
		}
	}

	return p, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, ownerID uuid.UUID, p *profile.Profile) error {
	languagesBytes, err := json.Marshal(p.Languages)
	if err != nil {
		return apperror.NewInternal("failed to marshal languages", err)
	}

	query := `
		INSERT INTO profiles (owner_id, name, position, affiliation, nationality, email, phone, mission, languages, photo_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			name = EXCLUDED.name,
			position = EXCLUDED.position,
			affiliation = EXCLUDED.affiliation,
			nationality = EXCLUDED.nationality,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			mission = EXCLUDED.mission,
			languages = EXCLUDED.languages,
			photo_url = EXCLUDED.photo_url,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		ownerID,
		p.Name,
		p.Position,
		p.Affiliation,
		p.Nationality,
		p.Email,
		p.Phone,
		p.Mission,
		languagesBytes,
		p.PhotoURL,
	)

	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}
