package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/event"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	kafkaClient *event.KafkaProducerClient
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, kClient *event.KafkaProducerClient, cache *persistence.PortfolioCache, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		kafkaClient: kClient,
		cache:       cache,
		logger:      log,
	}
}

type GetProfileInput struct {
	OwnerID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteGetProfile returns the stored profile overlay. A nil profile
// means nothing has been persisted yet.
func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpdateProfileInput struct {
	OwnerID uuid.UUID
	Patch   profile.Patch
}

type UpdateProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpdateProfile applies the patch onto whatever overlay is
// stored and upserts the result. Fields absent from the patch keep
// their stored value.
func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	current, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load profile for update failed: %w", err)
	}
	if current == nil {
		current = &profile.Profile{}
	}

	input.Patch.Apply(current)

	if err := uc.profileRepo.Upsert(ctx, input.OwnerID, current); err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, input.OwnerID)
	}
	if uc.kafkaClient != nil {
		err := uc.kafkaClient.PublishContentEvent(context.Background(), event.ContentEventPayload{
			EventType: event.ContentEventProfileUpdated,
			OwnerID:   input.OwnerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'profile.updated' event", err, zap.String("owner_id", input.OwnerID.String()))
		}
	}

	return &UpdateProfileOutput{Profile: current}, nil
}
