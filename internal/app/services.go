package app

import (
	"github.com/hrdesk/assistant-backend/internal/data/repos"
	"github.com/hrdesk/assistant-backend/internal/ingestion/extractor"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
	"github.com/hrdesk/assistant-backend/internal/services"
)

type Services struct {
	Embedding services.EmbeddingService
	Vectors   services.VectorService
	Ingestion services.IngestionService
	Chat      services.ChatService
	Documents services.DocumentService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, docRepo repos.DocumentRepo) (Services, error) {
	log.Info("Wiring services...")

	embedding := services.NewEmbeddingService(log, clients.OpenAI, services.EmbeddingConfig{})

	vectors, err := services.NewVectorService(log, clients.Pinecone, services.VectorConfig{
		IndexName: cfg.PineconeIndexName,
		IndexHost: cfg.PineconeIndexHost,
	})
	if err != nil {
		return Services{}, err
	}

	extract := extractor.New(log)

	ingestion := services.NewIngestionService(log, extract, embedding, vectors, docRepo, services.IngestionConfig{
		MaxFileSize:  cfg.MaxFileSize,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	chat := services.NewChatService(log, embedding, vectors, clients.OpenAI, services.ChatConfig{})

	documents := services.NewDocumentService(log, docRepo, vectors)

	return Services{
		Embedding: embedding,
		Vectors:   vectors,
		Ingestion: ingestion,
		Chat:      chat,
		Documents: documents,
	}, nil
}
