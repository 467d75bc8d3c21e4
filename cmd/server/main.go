package main

import (
	"business-hub-backend/internal/api/routes"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/database"
	"business-hub-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "business-hub-backend/docs" // This is needed for swag
)

//	@title			Business Hub Backend API
//	@version		1.0
//	@description	Multi-tenant business backend: companies and their members, invitations, task boards and a sales ledger.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.email	support@example.com

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router, err := routes.SetupRoutes(db, cfg)
	if err != nil {
		logrus.Fatal("Failed to set up routes: ", err)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"port":       port,
		"api_prefix": cfg.APIPrefix,
		"mail":       cfg.MailEnabled(),
	}).Info("Starting server")
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}
