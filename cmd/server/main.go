package main

import (
	"log"

	"appstore-notifications/internal/api"
	"appstore-notifications/internal/config"
	"appstore-notifications/internal/database"
	"appstore-notifications/internal/services"
	"appstore-notifications/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logging
	logging.InitLogging(cfg.LogLevel)

	// Initialize database
	store, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer store.Close()

	// Wire the processing pipeline. The relay stays nil when no webhook is
	// configured.
	var relay services.Relay
	if cfg.WebhookURL != "" {
		relay = services.NewWebhookRelay(cfg.WebhookURL, store)
		logging.Infof("Webhook relay enabled: %s", cfg.WebhookURL)
	} else {
		logging.Infof("WEBHOOK_URL not set, webhook relay disabled")
	}

	processor := services.NewProcessor(store, store, relay)
	defer processor.Wait()

	validator := services.NewReceiptValidator(cfg.ReceiptValidationURL, cfg.SharedSecret)
	handler := api.NewHandler(processor, store, validator, cfg.SharedSecret)

	// Set Gin mode
	gin.SetMode(cfg.Mode)

	// Create Gin engine
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(api.Recovery())

	// Setup routes
	api.SetupRoutes(r, handler)

	// Start server
	logging.Infof("Starting server on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
