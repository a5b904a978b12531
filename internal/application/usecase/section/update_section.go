package section

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/event"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type UpdateSectionUseCase struct {
	sectionRepo section.Repository
	kafkaClient *event.KafkaProducerClient
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewUpdateSectionUseCase(repo section.Repository, kClient *event.KafkaProducerClient, cache *persistence.PortfolioCache, log logger.Logger) *UpdateSectionUseCase {
	return &UpdateSectionUseCase{
		sectionRepo: repo,
		kafkaClient: kClient,
		cache:       cache,
		logger:      log,
	}
}

type UpdateSectionInput struct {
	OwnerID   uuid.UUID
	SectionID string
	Patch     section.Patch
	// RawContent is the undecoded content payload, if the patch carries
	// one. It is decoded here, against the stored section's effective
	// type, because the wire shape of content depends on that type.
	RawContent json.RawMessage
}

type UpdateSectionOutput struct {
	Section *section.Section
}

// Execute shallow-merges the patch onto the stored section. Any patch
// touching type or content is validated as a whole merged section
// before anything is written, so invalid content can never corrupt a
// stored valid payload and a type change must carry content of the
// new shape.
func (uc *UpdateSectionUseCase) Execute(ctx context.Context, input UpdateSectionInput) (*UpdateSectionOutput, error) {
	s, err := uc.sectionRepo.FindByID(ctx, input.OwnerID, input.SectionID)
	if err != nil {
		return nil, err
	}

	if len(input.RawContent) > 0 {
		typ := input.Patch.EffectiveType(s.Type)
		content, err := section.DecodeContent(s.ID, typ, input.RawContent)
		if err != nil {
			return nil, err
		}
		input.Patch.Content = &content
	}
	if input.Patch.Type != nil || input.Patch.Content != nil {
		merged := *s
		input.Patch.Apply(&merged)
		if err := section.ValidateContent(merged.ID, merged.Type, merged.Content); err != nil {
			return nil, err
		}
	}

	input.Patch.Apply(s)

	if err := uc.sectionRepo.Update(ctx, input.OwnerID, s); err != nil {
		return nil, fmt.Errorf("update section failed: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, input.OwnerID)
	}
	if uc.kafkaClient != nil {
		err := uc.kafkaClient.PublishContentEvent(context.Background(), event.ContentEventPayload{
			EventType: event.ContentEventSectionUpdated,
			OwnerID:   input.OwnerID,
			SectionID: s.ID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'section.updated' event", err, zap.String("section_id", s.ID))
		}
	}

	return &UpdateSectionOutput{Section: s}, nil
}
