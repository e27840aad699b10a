package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
	"github.com/hrdesk/assistant-backend/internal/services"
)

const maxUploadFiles = 10

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type UploadHandler struct {
	log       *logger.Logger
	ingest    services.IngestionService
	embed     services.EmbeddingService
	vectors   services.VectorService
	uploadDir string
}

func NewUploadHandler(log *logger.Logger, ingest services.IngestionService, embed services.EmbeddingService, vectors services.VectorService, uploadDir string) *UploadHandler {
	return &UploadHandler{
		log:       log.With("handler", "UploadHandler"),
		ingest:    ingest,
		embed:     embed,
		vectors:   vectors,
		uploadDir: uploadDir,
	}
}

// POST /api/upload
func (h *UploadHandler) ProcessFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid upload request",
			"message": err.Error(),
		})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No files uploaded",
			"message": "Please select at least one file to upload",
		})
		return
	}
	if len(fileHeaders) > maxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Too many files",
			"message": fmt.Sprintf("A maximum of %d files can be uploaded at once", maxUploadFiles),
		})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.log.Error("Failed to create upload directory", "dir", h.uploadDir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to stage uploaded files",
		})
		return
	}

	files := make([]domain.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		storedName := uniqueStoredName(fh.Filename)
		dst := filepath.Join(h.uploadDir, storedName)
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			h.log.Error("Failed to stage uploaded file", "filename", fh.Filename, "error", err)
			removeStaged(files)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Failed to process uploaded files",
				"details": err.Error(),
			})
			return
		}
		files = append(files, domain.UploadedFile{
			Path:         dst,
			OriginalName: fh.Filename,
			StoredName:   storedName,
			MimeType:     fh.Header.Get("Content-Type"),
			Size:         fh.Size,
		})
	}

	summary, results, err := h.ingest.ProcessFiles(c.Request.Context(), files, c.PostForm("department"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No files uploaded",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Processed %d files", summary.Total),
		"summary": summary,
		"results": results,
	})
}

// GET /api/upload/health
func (h *UploadHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	openaiOK := h.embed.TestConnection(ctx)
	pineconeOK := h.vectors.TestConnection(ctx)

	uploadDirStatus := "missing"
	if info, err := os.Stat(h.uploadDir); err == nil && info.IsDir() {
		uploadDirStatus = "exists"
	}

	allHealthy := openaiOK && pineconeOK
	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": healthWord(allHealthy),
		"services": gin.H{
			"openai":    connWord(openaiOK),
			"pinecone":  connWord(pineconeOK),
			"uploadDir": uploadDirStatus,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GET /api/upload/stats
func (h *UploadHandler) Stats(c *gin.Context) {
	stats, err := h.vectors.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get index stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get statistics",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload system statistics",
		"pinecone": gin.H{
			"totalVectors": stats.TotalVectors,
			"dimension":    stats.Dimension,
			"indexName":    h.vectors.IndexName(),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func uniqueStoredName(original string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filepath.Base(original), "_")
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), sanitized)
}

func removeStaged(files []domain.UploadedFile) {
	for _, f := range files {
		_ = os.Remove(f.Path)
	}
}

func healthWord(ok bool) string {
	if ok {
		return "healthy"
	}
	return "unhealthy"
}

func connWord(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}
