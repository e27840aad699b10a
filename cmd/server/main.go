package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hrdesk/assistant-backend/internal/app"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	addr := ":" + application.Cfg.Port
	application.Log.Info("Starting HTTP server", "addr", addr)
	if err := application.Run(addr); err != nil {
		application.Log.Error("Server exited", "error", err)
		application.Close()
		os.Exit(1)
	}
}
