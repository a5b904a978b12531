package section

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hoangvle/scholarfolio/internal/domain/section"
)

type ListSectionsUseCase struct {
	sectionRepo section.Repository
}

func NewListSectionsUseCase(repo section.Repository) *ListSectionsUseCase {
	return &ListSectionsUseCase{sectionRepo: repo}
}

type ListSectionsInput struct {
	OwnerID uuid.UUID
}

type ListSectionsOutput struct {
	Sections []section.Section
}

func (uc *ListSectionsUseCase) Execute(ctx context.Context, input ListSectionsInput) (*ListSectionsOutput, error) {
	sections, err := uc.sectionRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list sections failed: %w", err)
	}
	return &ListSectionsOutput{Sections: sections}, nil
}
