package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
	"github.com/hrdesk/assistant-backend/internal/services"
)

type ChatHandler struct {
	log     *logger.Logger
	chat    services.ChatService
	embed   services.EmbeddingService
	vectors services.VectorService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService, embed services.EmbeddingService, vectors services.VectorService) *ChatHandler {
	return &ChatHandler{
		log:     log.With("handler", "ChatHandler"),
		chat:    chat,
		embed:   embed,
		vectors: vectors,
	}
}

type chatRequestBody struct {
	Message             string               `json:"message"`
	Department          string               `json:"department"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var body chatRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "Request body must be valid JSON",
		})
		return
	}

	result, err := h.chat.Answer(c.Request.Context(), domain.ChatRequest{
		Message:             body.Message,
		Department:          body.Department,
		ConversationHistory: body.ConversationHistory,
	})
	if err != nil {
		h.respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":           result.Response,
		"sources":            result.Sources,
		"contextUsed":        result.ContextUsed,
		"relevantChunks":     result.RelevantChunks,
		"totalSearchResults": result.TotalSearchResults,
		"confidenceLevel":    result.ConfidenceLevel,
	})
}

func (h *ChatHandler) respondChatError(c *gin.Context, err error) {
	var noContent *apperr.NoRelevantContentError
	var searchErr *apperr.SearchError

	switch {
	case errors.Is(err, apperr.ErrNoMessage):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Message is required",
			"message": "Please provide a question to ask",
		})
	case errors.As(err, &noContent):
		c.JSON(http.StatusNotFound, gin.H{
			"error":           "No relevant information found",
			"message":         "I couldn't find any relevant information in the uploaded documents to answer your question. Please try rephrasing your question or upload relevant documents.",
			"searchResults":   noContent.SearchResults,
			"relevantResults": 0,
		})
	case errors.As(err, &searchErr):
		h.log.Error("Vector search failed", "error", searchErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         "Failed to search documents",
			"message":       "An error occurred while searching the document index",
			"pineconeError": searchErr.Err.Error(),
		})
	default:
		h.log.Error("Chat request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process chat request",
			"message": "An unexpected error occurred while generating a response",
			"details": err.Error(),
		})
	}
}

// GET /api/chat/health
func (h *ChatHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	openaiOK := h.embed.TestConnection(ctx)

	indexStats := gin.H{"available": false}
	pineconeOK := false
	if stats, err := h.vectors.Stats(ctx); err == nil {
		pineconeOK = true
		indexStats = gin.H{
			"available":    true,
			"totalVectors": stats.TotalVectors,
			"dimension":    stats.Dimension,
		}
	}

	allHealthy := openaiOK && pineconeOK
	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    healthWord(allHealthy),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"openai":          connWord(openaiOK),
			"pinecone":        connWord(pineconeOK),
			"indexStats":      indexStats,
			"chatSystemReady": allHealthy,
		},
	})
}
