package section

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/adapters/event"
	"github.com/hoangvle/scholarfolio/adapters/persistence"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type CreateSectionUseCase struct {
	sectionRepo section.Repository
	kafkaClient *event.KafkaProducerClient
	cache       *persistence.PortfolioCache
	logger      logger.Logger
}

func NewCreateSectionUseCase(repo section.Repository, kClient *event.KafkaProducerClient, cache *persistence.PortfolioCache, log logger.Logger) *CreateSectionUseCase {
	return &CreateSectionUseCase{
		sectionRepo: repo,
		kafkaClient: kClient,
		cache:       cache,
		logger:      log,
	}
}

type CreateSectionInput struct {
	OwnerID uuid.UUID
	Title   string
	Type    section.Type
	Content section.Content
	Visible *bool
}

type CreateSectionOutput struct {
	Section *section.Section
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "section"
	}
	return slug
}

// Execute generates the section id server-side and appends the section
// at the end of the current order. On an id collision the slug gets a
// short random suffix and the insert is retried once.
func (uc *CreateSectionUseCase) Execute(ctx context.Context, input CreateSectionInput) (*CreateSectionOutput, error) {
	count, err := uc.sectionRepo.CountByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("count sections failed: %w", err)
	}

	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	newSection := &section.Section{
		ID:      slugify(input.Title),
		Title:   input.Title,
		Type:    input.Type,
		Order:   count + 1,
		Visible: visible,
		Content: input.Content,
	}

	if err := newSection.Validate(); err != nil {
		if errors.Is(err, apperror.ErrShape) {
			return nil, err
		}
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	err = uc.sectionRepo.Save(ctx, input.OwnerID, newSection)
	if errors.Is(err, apperror.ErrConflict) {
		newSection.ID = newSection.ID + "-" + uuid.NewString()[:8]
		err = uc.sectionRepo.Save(ctx, input.OwnerID, newSection)
	}
	if err != nil {
		return nil, fmt.Errorf("save section failed: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, input.OwnerID)
	}
	if uc.kafkaClient != nil {
		err := uc.kafkaClient.PublishContentEvent(context.Background(), event.ContentEventPayload{
			EventType: event.ContentEventSectionCreated,
			OwnerID:   input.OwnerID,
			SectionID: newSection.ID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'section.created' event", err, zap.String("section_id", newSection.ID))
		}
	}

	return &CreateSectionOutput{Section: newSection}, nil
}
