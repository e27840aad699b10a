package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
	"github.com/hrdesk/assistant-backend/internal/services"
)

type DocumentHandler struct {
	log  *logger.Logger
	docs services.DocumentService
}

func NewDocumentHandler(log *logger.Logger, docs services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		log:  log.With("handler", "DocumentHandler"),
		docs: docs,
	}
}

// GET /api/documents
func (h *DocumentHandler) List(c *gin.Context) {
	documents, err := h.docs.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list documents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list documents",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"count":     len(documents),
	})
}

// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid document id",
			"message": "Document id must be a valid UUID",
		})
		return
	}

	vectorsDeleted, err := h.docs.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Document not found",
				"message": "No document exists with the given id",
			})
			return
		}
		h.log.Error("Failed to delete document", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete document",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Document deleted",
		"vectorsDeleted": vectorsDeleted,
	})
}
