package http

import (
	"time"

	"github.com/gin-gonic/gin"

	httpH "github.com/hrdesk/assistant-backend/internal/http/handlers"
	httpMW "github.com/hrdesk/assistant-backend/internal/http/middleware"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	FrontendURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration

	HealthHandler   *httpH.HealthHandler
	UploadHandler   *httpH.UploadHandler
	ChatHandler     *httpH.ChatHandler
	DocumentHandler *httpH.DocumentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.FrontendURL))
	if cfg.RateLimitMax > 0 {
		r.Use(httpMW.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Upload + ingestion
		if cfg.UploadHandler != nil {
			api.POST("/upload", cfg.UploadHandler.ProcessFiles)
			api.GET("/upload/health", cfg.UploadHandler.HealthCheck)
			api.GET("/upload/stats", cfg.UploadHandler.Stats)
		}

		// Chat
		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.Chat)
			api.GET("/chat/health", cfg.ChatHandler.HealthCheck)
		}

		// Document registry
		if cfg.DocumentHandler != nil {
			api.GET("/documents", cfg.DocumentHandler.List)
			api.DELETE("/documents/:id", cfg.DocumentHandler.Delete)
		}
	}

	return r
}
