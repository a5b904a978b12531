package section

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/event"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type ReorderSectionsUseCase struct {
	sectionRepo section.Repository
	kafkaClient *event.KafkaProducerClient
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewReorderSectionsUseCase(repo section.Repository, kClient *event.KafkaProducerClient, cache *persistence.PortfolioCache, log logger.Logger) *ReorderSectionsUseCase {
	return &ReorderSectionsUseCase{
		sectionRepo: repo,
		kafkaClient: kClient,
		cache:       cache,
		logger:      log,
	}
}

type ReorderSectionsInput struct {
	OwnerID    uuid.UUID
	OrderedIDs []string
}

// Execute renumbers the given sequence in one transactional batch.
// Partial application is impossible: an unknown id rolls the whole
// reorder back.
func (uc *ReorderSectionsUseCase) Execute(ctx context.Context, input ReorderSectionsInput) error {
	if len(input.OrderedIDs) == 0 {
		return apperror.NewInvalidInput("ordered id list is empty", nil)
	}
	seen := make(map[string]struct{}, len(input.OrderedIDs))
	for _, id := range input.OrderedIDs {
		if _, dup := seen[id]; dup {
			return apperror.NewInvalidInput("ordered id list contains duplicates", nil)
		}
		seen[id] = struct{}{}
	}

	if err := uc.sectionRepo.ReorderAll(ctx, input.OwnerID, input.OrderedIDs); err != nil {
		return err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, input.OwnerID)
	}
	if uc.kafkaClient != nil {
		err := uc.kafkaClient.PublishContentEvent(context.Background(), event.ContentEventPayload{
			EventType: event.ContentEventSectionsReordered,
			OwnerID:   input.OwnerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'sections.reordered' event", err, zap.String("owner_id", input.OwnerID.String()))
		}
	}

	return nil
}
