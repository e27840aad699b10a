package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hrdesk/assistant-backend/internal/data/db"
	"github.com/hrdesk/assistant-backend/internal/data/repos"
	internalhttp "github.com/hrdesk/assistant-backend/internal/http"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *internalhttp.Server
	Router   *gin.Engine
	Cfg      Config
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	sqlite, err := db.NewSQLiteService(log, cfg.SQLitePath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init sqlite: %w", err)
	}
	if err := sqlite.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("sqlite automigrate: %w", err)
	}
	theDB := sqlite.DB()

	docRepo := repos.NewDocumentRepo(theDB, log)

	clientset := wireClients(log, cfg)

	serviceset, err := wireServices(log, cfg, clientset, docRepo)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, cfg, serviceset)

	server := internalhttp.NewServer(internalhttp.RouterConfig{
		Log:             log,
		FrontendURL:     cfg.FrontendURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		HealthHandler:   handlerset.Health,
		UploadHandler:   handlerset.Upload,
		ChatHandler:     handlerset.Chat,
		DocumentHandler: handlerset.Document,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Router:   server.Engine,
		Cfg:      cfg,
		Services: serviceset,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
