package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

type AdminIntelHandler struct {
	log   *logger.Logger
	intel services.IntelService
}

func NewAdminIntelHandler(log *logger.Logger, intel services.IntelService) *AdminIntelHandler {
	return &AdminIntelHandler{log: log.With("handler", "AdminIntelHandler"), intel: intel}
}

// GET /api/admin/market-intelligence
func (h *AdminIntelHandler) List(c *gin.Context) {
	items, err := h.intel.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if items == nil {
		items = []*domain.IntelItem{}
	}
	response.RespondOK(c, gin.H{"items": items})
}

// POST /api/admin/market-intelligence
func (h *AdminIntelHandler) Create(c *gin.Context) {
	var in services.CreateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	item, err := h.intel.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"item": item})
}

// PATCH /api/admin/market-intelligence/:id
func (h *AdminIntelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid item id")
		return
	}
	var in services.UpdateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	item, err := h.intel.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// DELETE /api/admin/market-intelligence/:id
func (h *AdminIntelHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid item id")
		return
	}
	if err := h.intel.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
