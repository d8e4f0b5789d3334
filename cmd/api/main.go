package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/eduinsight/eduinsight/internal/pkg/logger"
	"github.com/eduinsight/eduinsight/internal/server"
)

// @title EduInsight API
// @version 1.0
// @description Student performance tracking and at-risk prediction API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@eduinsight.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
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
