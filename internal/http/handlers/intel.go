package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

type IntelHandler struct {
	log   *logger.Logger
	intel services.IntelService
}

func NewIntelHandler(log *logger.Logger, intel services.IntelService) *IntelHandler {
	return &IntelHandler{log: log.With("handler", "IntelHandler"), intel: intel}
}

// GET /api/market-intelligence
func (h *IntelHandler) ListPublic(c *gin.Context) {
	items, err := h.intel.ListPublic(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if items == nil {
		items = []*domain.IntelItem{}
	}
	response.RespondOK(c, gin.H{"items": items})
}
