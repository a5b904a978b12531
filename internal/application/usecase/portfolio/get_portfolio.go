package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/application/reconcile"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

// GetPortfolioUseCase serves the public merged view: stored content
// reconciled onto the default baseline. Storage trouble degrades to the
// baseline with a flag, never to an error page.
type GetPortfolioUseCase struct {
	profileRepo profile.Repository
	sectionRepo section.Repository
	engine      *reconcile.Engine
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewGetPortfolioUseCase(
	pRepo profile.Repository,
	sRepo section.Repository,
	engine *reconcile.Engine,
	cache *persistence.PortfolioCache,
	log logger.Logger,
) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{
		profileRepo: pRepo,
		sectionRepo: sRepo,
		engine:      engine,
		cache:       cache,
		logger:      log,
	}
}

type GetPortfolioInput struct {
	OwnerID uuid.UUID
}

type GetPortfolioOutput struct {
	State reconcile.State
	// Degraded is set when stored content could not be read and the
	// baseline (or part of it) is served instead.
	Degraded bool
}

var tracer = otel.Tracer("portfolio_usecase")

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	if uc.cache != nil {
		if state, hit := uc.cache.Get(ctx, input.OwnerID); hit {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return &GetPortfolioOutput{State: *state}, nil
		}
	}

	degraded := false

	remoteProfile, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		uc.logger.Error("Failed to load stored profile, serving baseline", err, zap.String("owner_id", input.OwnerID.String()))
		span.RecordError(err)
		remoteProfile = nil
		degraded = true
	}

	remoteSections, err := uc.sectionRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		uc.logger.Error("Failed to load stored sections, serving baseline", err, zap.String("owner_id", input.OwnerID.String()))
		span.RecordError(err)
		remoteSections = nil
		degraded = true
	}

	state := uc.engine.Reconcile(remoteProfile, remoteSections)
	section.SortStable(state.Sections)

	if uc.cache != nil && !degraded {
		uc.cache.Set(ctx, input.OwnerID, &state)
	}

	return &GetPortfolioOutput{State: state, Degraded: degraded}, nil
}
