package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "FRONTEND_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"OPENAI_MAX_RETRIES", "EMBEDDING_MODEL", "CHAT_MODEL",
		"EMBEDDING_DIMENSIONS", "PINECONE_API_KEY", "PINECONE_BASE_URL",
		"PINECONE_INDEX_NAME", "PINECONE_INDEX_HOST", "UPLOAD_DIR",
		"MAX_FILE_SIZE", "CHUNK_SIZE", "CHUNK_OVERLAP", "SQLITE_PATH",
		"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig(nil)

	if cfg.Port != "3001" {
		t.Fatalf("Port: want=3001 got=%q", cfg.Port)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Fatalf("EmbeddingModel: got %q", cfg.EmbeddingModel)
	}
	if cfg.ChatModel != "gpt-3.5-turbo" {
		t.Fatalf("ChatModel: got %q", cfg.ChatModel)
	}
	if cfg.EmbeddingDimensions != 2048 {
		t.Fatalf("EmbeddingDimensions: got %d", cfg.EmbeddingDimensions)
	}
	if cfg.OpenAIBaseURL != "" || cfg.PineconeBaseURL != "" {
		t.Fatalf("base URLs: want empty got openai=%q pinecone=%q", cfg.OpenAIBaseURL, cfg.PineconeBaseURL)
	}
	if cfg.OpenAIMaxRetries != 2 {
		t.Fatalf("OpenAIMaxRetries: want=2 got=%d", cfg.OpenAIMaxRetries)
	}
	if cfg.PineconeIndexName != "hrdocs" {
		t.Fatalf("PineconeIndexName: got %q", cfg.PineconeIndexName)
	}
	if cfg.MaxFileSize != 10485760 {
		t.Fatalf("MaxFileSize: got %d", cfg.MaxFileSize)
	}
	if cfg.ChunkSize != 2000 || cfg.ChunkOverlap != 400 {
		t.Fatalf("chunking: got size=%d overlap=%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.UploadDir != "./uploads" {
		t.Fatalf("UploadDir: got %q", cfg.UploadDir)
	}
	if cfg.SQLitePath != "./data/hrdocs.db" {
		t.Fatalf("SQLitePath: got %q", cfg.SQLitePath)
	}
	if cfg.RateLimitMax != 100 {
		t.Fatalf("RateLimitMax: got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("RateLimitWindow: got %v", cfg.RateLimitWindow)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CHUNK_SIZE", "1000")
	t.Setenv("CHUNK_OVERLAP", "200")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "60")
	t.Setenv("OPENAI_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("PINECONE_BASE_URL", "http://127.0.0.1:9001")
	t.Setenv("OPENAI_MAX_RETRIES", "5")

	cfg := LoadConfig(nil)

	if cfg.Port != "8080" {
		t.Fatalf("Port: got %q", cfg.Port)
	}
	if cfg.OpenAIBaseURL != "http://127.0.0.1:9000" {
		t.Fatalf("OpenAIBaseURL: got %q", cfg.OpenAIBaseURL)
	}
	if cfg.PineconeBaseURL != "http://127.0.0.1:9001" {
		t.Fatalf("PineconeBaseURL: got %q", cfg.PineconeBaseURL)
	}
	if cfg.OpenAIMaxRetries != 5 {
		t.Fatalf("OpenAIMaxRetries: got %d", cfg.OpenAIMaxRetries)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Fatalf("chunking: got size=%d overlap=%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Fatalf("RateLimitWindow: got %v", cfg.RateLimitWindow)
	}
}
