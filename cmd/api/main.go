package main

import (
	"os"

	"github.com/maritimetq/talentquest/internal/pkg/logger"
	"github.com/maritimetq/talentquest/internal/server"
)

// @title Maritime Talent Quest API
// @version 1.0
// @description Registration, QR pass and dashboard API for the Maritime Talent Quest

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// CONFIG_PATH overrides configs/config.yaml
	srv, err := server.NewServer(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
