package app

import (
	httpH "github.com/hrdesk/assistant-backend/internal/http/handlers"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Upload   *httpH.UploadHandler
	Chat     *httpH.ChatHandler
	Document *httpH.DocumentHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Upload:   httpH.NewUploadHandler(log, services.Ingestion, services.Embedding, services.Vectors, cfg.UploadDir),
		Chat:     httpH.NewChatHandler(log, services.Chat, services.Embedding, services.Vectors),
		Document: httpH.NewDocumentHandler(log, services.Documents),
	}
}
