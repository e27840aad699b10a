package app

import (
	"time"

	"github.com/hrdesk/assistant-backend/internal/pkg/env"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type Config struct {
	Port        string
	FrontendURL string

	OpenAIAPIKey        string
	OpenAIBaseURL       string
	OpenAIMaxRetries    int
	EmbeddingModel      string
	ChatModel           string
	EmbeddingDimensions int

	PineconeAPIKey    string
	PineconeBaseURL   string
	PineconeIndexName string
	PineconeIndexHost string

	UploadDir    string
	MaxFileSize  int64
	ChunkSize    int
	ChunkOverlap int

	SQLitePath string

	RateLimitMax    int
	RateLimitWindow time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	rateLimitWindowSeconds := env.GetAsInt("RATE_LIMIT_WINDOW_SECONDS", 900, log)
	return Config{
		Port:        env.Get("PORT", "3001", log),
		FrontendURL: env.Get("FRONTEND_URL", "", log),

		OpenAIAPIKey:        env.Get("OPENAI_API_KEY", "", log),
		OpenAIBaseURL:       env.Get("OPENAI_BASE_URL", "", log),
		OpenAIMaxRetries:    env.GetAsInt("OPENAI_MAX_RETRIES", 2, log),
		EmbeddingModel:      env.Get("EMBEDDING_MODEL", "text-embedding-3-large", log),
		ChatModel:           env.Get("CHAT_MODEL", "gpt-3.5-turbo", log),
		EmbeddingDimensions: env.GetAsInt("EMBEDDING_DIMENSIONS", 2048, log),

		PineconeAPIKey:    env.Get("PINECONE_API_KEY", "", log),
		PineconeBaseURL:   env.Get("PINECONE_BASE_URL", "", log),
		PineconeIndexName: env.Get("PINECONE_INDEX_NAME", "hrdocs", log),
		PineconeIndexHost: env.Get("PINECONE_INDEX_HOST", "", log),

		UploadDir:    env.Get("UPLOAD_DIR", "./uploads", log),
		MaxFileSize:  env.GetAsInt64("MAX_FILE_SIZE", 10485760, log),
		ChunkSize:    env.GetAsInt("CHUNK_SIZE", 2000, log),
		ChunkOverlap: env.GetAsInt("CHUNK_OVERLAP", 400, log),

		SQLitePath: env.Get("SQLITE_PATH", "./data/hrdocs.db", log),

		RateLimitMax:    env.GetAsInt("RATE_LIMIT_MAX", 100, log),
		RateLimitWindow: time.Duration(rateLimitWindowSeconds) * time.Second,
	}
}
