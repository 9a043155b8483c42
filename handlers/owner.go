package handlers

import (
	"net/http"

	"datekeeper/services/owner"
	"datekeeper/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OwnerHandler exposes owner notification settings endpoints.
type OwnerHandler struct {
	Service owner.OwnerService
}

func NewOwnerHandler(svc owner.OwnerService) *OwnerHandler {
	return &OwnerHandler{Service: svc}
}

// GetOwnerHandler handles GET /api/owners/:id.
func (h *OwnerHandler) GetOwnerHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	o, err := h.Service.GetOwner(id)
	if err != nil {
		logger.Error("Owner not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// UpdateSettingsHandler handles PUT /api/owners/:id/settings.
func (h *OwnerHandler) UpdateSettingsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req owner.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	req.ID = c.Param("id")
	o, err := h.Service.UpdateSettings(req)
	if err != nil {
		logger.Error("Update settings error", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}
