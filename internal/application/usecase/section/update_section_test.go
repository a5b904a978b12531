package section

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type stubSectionRepo struct {
	section.Repository
	stored  *section.Section
	updated *section.Section
}

func (r *stubSectionRepo) FindByID(ctx context.Context, ownerID uuid.UUID, id string) (*section.Section, error) {
	if r.stored == nil || r.stored.ID != id {
		return nil, apperror.NewNotFound("section", id)
	}
	found := *r.stored
	return &found, nil
}

func (r *stubSectionRepo) Update(ctx context.Context, ownerID uuid.UUID, s *section.Section) error {
	r.updated = s
	return nil
}

func storedAbout() *section.Section {
	return &section.Section{
		ID:      section.IDAbout,
		Title:   "About",
		Type:    section.TypeText,
		Order:   1,
		Visible: true,
		Content: section.TextContent("<p>keep me</p>"),
	}
}

func TestUpdateSection_TypeOnlyPatchRejected(t *testing.T) {
	repo := &stubSectionRepo{stored: storedAbout()}
	uc := NewUpdateSectionUseCase(repo, nil, nil, logger.NewNop())

	listType := section.TypeList
	_, err := uc.Execute(context.Background(), UpdateSectionInput{
		OwnerID:   uuid.New(),
		SectionID: section.IDAbout,
		Patch:     section.Patch{Type: &listType},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrShape)
	assert.Nil(t, repo.updated, "a rejected patch must not reach the repository")
}

func TestUpdateSection_TypeChangeWithContentAccepted(t *testing.T) {
	repo := &stubSectionRepo{stored: storedAbout()}
	uc := NewUpdateSectionUseCase(repo, nil, nil, logger.NewNop())

	listType := section.TypeList
	out, err := uc.Execute(context.Background(), UpdateSectionInput{
		OwnerID:    uuid.New(),
		SectionID:  section.IDAbout,
		Patch:      section.Patch{Type: &listType},
		RawContent: json.RawMessage(`["a","b"]`),
	})

	require.NoError(t, err)
	assert.Equal(t, section.TypeList, out.Section.Type)
	assert.Equal(t, []string{"a", "b"}, out.Section.Content.List)
	require.NotNil(t, repo.updated)
	assert.Equal(t, section.TypeList, repo.updated.Type)
}

func TestUpdateSection_ContentOnlyPatchStillValidated(t *testing.T) {
	repo := &stubSectionRepo{stored: storedAbout()}
	uc := NewUpdateSectionUseCase(repo, nil, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), UpdateSectionInput{
		OwnerID:    uuid.New(),
		SectionID:  section.IDAbout,
		RawContent: json.RawMessage(`["not","text"]`),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrShape)
	assert.Nil(t, repo.updated)
}
