package app

import (
	"github.com/hrdesk/assistant-backend/internal/clients/openai"
	"github.com/hrdesk/assistant-backend/internal/clients/pinecone"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type Clients struct {
	OpenAI   openai.Client
	Pinecone pinecone.Client
}

// wireClients builds the external API clients. A missing API key leaves the
// corresponding client nil; the services degrade to disabled rather than
// failing startup, so the health endpoints can report the gap.
func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	var clients Clients

	if cfg.OpenAIAPIKey != "" {
		ai, err := openai.New(log, openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			EmbedModel: cfg.EmbeddingModel,
			ChatModel:  cfg.ChatModel,
			Dimensions: cfg.EmbeddingDimensions,
			MaxRetries: cfg.OpenAIMaxRetries,
		})
		if err != nil {
			log.Warn("OpenAI client unavailable", "error", err)
		} else {
			clients.OpenAI = ai
		}
	} else {
		log.Warn("OPENAI_API_KEY not set; embeddings and chat are disabled")
	}

	if cfg.PineconeAPIKey != "" {
		pc, err := pinecone.New(log, pinecone.Config{
			APIKey:  cfg.PineconeAPIKey,
			BaseURL: cfg.PineconeBaseURL,
		})
		if err != nil {
			log.Warn("Pinecone client unavailable", "error", err)
		} else {
			clients.Pinecone = pc
		}
	} else {
		log.Warn("PINECONE_API_KEY not set; vector storage is disabled")
	}

	return clients
}
