package handlers

import (
	"net/http"

	"datekeeper/services/extraction"
	"datekeeper/utils"

	"github.com/gin-gonic/gin"
)

// ExtractHandler exposes the OCR text analysis endpoint. The OCR engine runs
// elsewhere; this endpoint only receives its text output.
type ExtractHandler struct {
	Service extraction.ExtractionService
}

func NewExtractHandler(svc extraction.ExtractionService) *ExtractHandler {
	return &ExtractHandler{Service: svc}
}

type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractExpiryHandler handles POST /api/ocr/extract. It always returns 200:
// a dateless text is a low-confidence result, not an error.
func (h *ExtractHandler) ExtractExpiryHandler(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	result := h.Service.Extract(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, result)
}
