package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/hoangvle/scholarfolio/internal/application/usecase/portfolio"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

// PortfolioHandler serves the public merged portfolio. The owner is
// fixed per deployment, so no auth is involved on this path.
type PortfolioHandler struct {
	getUseCase *portfolioUC.GetPortfolioUseCase
	ownerID    uuid.UUID
	logger     logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.GetPortfolioUseCase, ownerID uuid.UUID, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		getUseCase: uc,
		ownerID:    ownerID,
		logger:     log,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.getUseCase.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{OwnerID: h.ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	dto, err := ToPortfolioDTO(output.State, output.Degraded)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
