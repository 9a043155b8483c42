package handlers

import (
	"net/http"

	"datekeeper/services/document"
	"datekeeper/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler exposes document CRUD endpoints.
type DocumentHandler struct {
	Service document.DocumentService
}

func NewDocumentHandler(svc document.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: svc}
}

// CreateDocumentHandler handles POST /api/documents.
func (h *DocumentHandler) CreateDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req document.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	doc, err := h.Service.CreateDocument(req)
	if err != nil {
		logger.Error("Create document error", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Failed to create document", err.Error())
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// GetDocumentHandler handles GET /api/documents/:id.
func (h *DocumentHandler) GetDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	doc, err := h.Service.GetDocument(id)
	if err != nil {
		logger.Error("Document not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListDocumentsHandler handles GET /api/documents/owner/:ownerID.
func (h *DocumentHandler) ListDocumentsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ownerID := c.Param("ownerID")
	docs, err := h.Service.ListByOwner(ownerID)
	if err != nil {
		logger.Error("List documents error", zap.String("ownerID", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// UpdateDocumentHandler handles PUT /api/documents/:id.
func (h *DocumentHandler) UpdateDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req document.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	req.ID = c.Param("id")
	doc, err := h.Service.UpdateDocument(req)
	if err != nil {
		logger.Error("Update document error", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DeleteDocumentHandler handles DELETE /api/documents/:id.
func (h *DocumentHandler) DeleteDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.Service.DeleteDocument(id); err != nil {
		logger.Error("Delete document error", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
