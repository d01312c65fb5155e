package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/gideonadjei94/KnowMateBackend/internal/app"
	"github.com/gideonadjei94/KnowMateBackend/internal/config"
	"github.com/gideonadjei94/KnowMateBackend/internal/logger"
)

func main() {
	// Optional .env for local development; ignore absence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	if err := app.Run(cfg, zlog); err != nil {
		log.Fatalf("app: %v", err)
	}
}
