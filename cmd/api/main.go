package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env for local development; production uses the process environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		log.Fatal().Err(err).Msg("load config")
	}

	logger.Init(cfg.App.Environment)
	if envErr != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.App.Environment).Str("version", cfg.App.Version).Msg("starting reference catalog api")

	if err := Serve(cfg); err != nil {
		log.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}
