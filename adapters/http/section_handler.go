package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sectionUC "github.com/hoangvle/scholarfolio/internal/application/usecase/section"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/apperror"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

type SectionHandler struct {
	listUseCase    *sectionUC.ListSectionsUseCase
	createUseCase  *sectionUC.CreateSectionUseCase
	updateUseCase  *sectionUC.UpdateSectionUseCase
	deleteUseCase  *sectionUC.DeleteSectionUseCase
	reorderUseCase *sectionUC.ReorderSectionsUseCase
	logger         logger.Logger
}

func NewSectionHandler(
	listUC *sectionUC.ListSectionsUseCase,
	createUC *sectionUC.CreateSectionUseCase,
	updateUC *sectionUC.UpdateSectionUseCase,
	deleteUC *sectionUC.DeleteSectionUseCase,
	reorderUC *sectionUC.ReorderSectionsUseCase,
	log logger.Logger,
) *SectionHandler {
	return &SectionHandler{
		listUseCase:    listUC,
		createUseCase:  createUC,
		updateUseCase:  updateUC,
		deleteUseCase:  deleteUC,
		reorderUseCase: reorderUC,
		logger:         log,
	}
}

func (h *SectionHandler) ListSections(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.listUseCase.Execute(c.Request.Context(), sectionUC.ListSectionsInput{OwnerID: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	dtos, err := ToSectionDTOs(output.Sections)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for section create", err))
		return
	}

	typ := section.Type(req.Type)
	var content section.Content
	if len(req.Content) > 0 {
		// The id is generated later, so cards payloads decode against
		// the flat default variant here.
		decoded, err := section.DecodeContent("", typ, req.Content)
		if err != nil {
			c.Error(err)
			return
		}
		content = decoded
	}

	input := sectionUC.CreateSectionInput{
		OwnerID: ownerID,
		Title:   req.Title,
		Type:    typ,
		Content: content,
		Visible: req.Visible,
	}
	output, err := h.createUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dto, err := ToSectionDTO(output.Section)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	sectionID := c.Param("id")

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for section update", err))
		return
	}

	patch := section.Patch{
		Title:   req.Title,
		Order:   req.Order,
		Visible: req.Visible,
	}
	if req.Type != nil {
		typ := section.Type(*req.Type)
		patch.Type = &typ
	}
	input := sectionUC.UpdateSectionInput{
		OwnerID:    ownerID,
		SectionID:  sectionID,
		Patch:      patch,
		RawContent: req.Content,
	}
	output, err := h.updateUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dto, err := ToSectionDTO(output.Section)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	sectionID := c.Param("id")

	input := sectionUC.DeleteSectionInput{OwnerID: ownerID, SectionID: sectionID}
	if err := h.deleteUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": sectionID})
}

func (h *SectionHandler) ReorderSections(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for section reorder", err))
		return
	}

	input := sectionUC.ReorderSectionsInput{OwnerID: ownerID, OrderedIDs: req.IDs}
	if err := h.reorderUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reordered": len(req.IDs)})
}
