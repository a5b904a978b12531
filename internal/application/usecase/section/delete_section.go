package section

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/event"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type DeleteSectionUseCase struct {
	sectionRepo section.Repository
	kafkaClient *event.KafkaProducerClient
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewDeleteSectionUseCase(repo section.Repository, kClient *event.KafkaProducerClient, cache *persistence.PortfolioCache, log logger.Logger) *DeleteSectionUseCase {
	return &DeleteSectionUseCase{
		sectionRepo: repo,
		kafkaClient: kClient,
		cache:       cache,
		logger:      log,
	}
}

type DeleteSectionInput struct {
	OwnerID   uuid.UUID
	SectionID string
}

func (uc *DeleteSectionUseCase) Execute(ctx context.Context, input DeleteSectionInput) error {
	if err := uc.sectionRepo.Delete(ctx, input.OwnerID, input.SectionID); err != nil {
		return err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, input.OwnerID)
	}
	if uc.kafkaClient != nil {
		err := uc.kafkaClient.PublishContentEvent(context.Background(), event.ContentEventPayload{
			EventType: event.ContentEventSectionDeleted,
			OwnerID:   input.OwnerID,
			SectionID: input.SectionID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'section.deleted' event", err, zap.String("section_id", input.SectionID))
		}
	}

	return nil
}
