package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type postgresSectionRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSectionRepo(db *pgxpool.Pool, logger logger.Logger) section.Repository {
	return &postgresSectionRepo{db: db, logger: logger}
}

var psqlSection = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresSectionRepo) scanSection(row pgx.Row) (*section.Section, error) {
	s := &section.Section{}
	var contentBytes []byte

	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Type,
		&s.Order,
		&s.Visible,
		&contentBytes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("section", "")
		}
		return nil, apperror.NewInternal("failed to scan section row", err)
	}

	if len(contentBytes) > 0 {
		content, err := section.DecodeContent(s.ID, s.Type, contentBytes)
		if err != nil {
			// One malformed stored payload must not break the whole
			// listing; the section falls back to empty content.
			r.logger.Warn("Failed to decode section content",
				zap.String("section_id", s.ID), zap.Error(err))
			content = section.Content{}
		}
		s.Content = content
	}

	return s, nil
}

func (r *postgresSectionRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]section.Section, error) {
	query, args, err := psqlSection.
		Select("id", "title", "type", "ord", "visible", "content").
		From("sections").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("ord ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build section list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list sections", err)
	}
	defer rows.Close()

	sections := make([]section.Section, 0)
	for rows.Next() {
		s, err := r.scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating section rows", err)
	}
	return sections, nil
}

func (r *postgresSectionRepo) FindByID(ctx context.Context, ownerID uuid.UUID, id string) (*section.Section, error) {
	query := `
		SELECT id, title, type, ord, visible, content
		FROM sections
		WHERE owner_id = $1 AND id = $2
	`
	s, err := r.scanSection(r.db.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("section", id)
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSectionRepo) Save(ctx context.Context, ownerID uuid.UUID, s *section.Section) error {
	contentBytes, err := section.EncodeContent(s.Type, s.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sections (owner_id, id, title, type, ord, visible, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		ownerID, s.ID, s.Title, s.Type, s.Order, s.Visible, contentBytes,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return apperror.NewConflict("section", "id", s.ID)
		}
		return apperror.NewInternal("failed to save section", err)
	}
	return nil
}

func (r *postgresSectionRepo) Update(ctx context.Context, ownerID uuid.UUID, s *section.Section) error {
	contentBytes, err := section.EncodeContent(s.Type, s.Content)
	if err != nil {
		return err
	}

	query, args, err := psqlSection.
		Update("sections").
		Set("title", s.Title).
		Set("type", s.Type).
		Set("ord", s.Order).
		Set("visible", s.Visible).
		Set("content", contentBytes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"owner_id": ownerID, "id": s.ID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build section update query", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update section", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("section", s.ID)
	}
	return nil
}

func (r *postgresSectionRepo) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sections WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return apperror.NewInternal("failed to delete section", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("section", id)
	}
	return nil
}

// ReorderAll rewrites the ord column for the whole given sequence in
// one transaction. Either every id is found and renumbered or nothing
// changes.
func (r *postgresSectionRepo) ReorderAll(ctx context.Context, ownerID uuid.UUID, orderedIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin reorder transaction", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range orderedIDs {
		cmdTag, err := tx.Exec(ctx,
			`UPDATE sections SET ord = $1, updated_at = NOW() WHERE owner_id = $2 AND id = $3`,
			i+1, ownerID, id,
		)
		if err != nil {
			return apperror.NewInternal("failed to reorder section", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperror.NewNotFound("section", id)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit reorder transaction", err)
	}
	return nil
}

func (r *postgresSectionRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sections WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, apperror.NewInternal("failed to count sections", err)
	}
	return count, nil
}
