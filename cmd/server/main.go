package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/musab05/blog-posting-website/internal/router"
	"github.com/musab05/blog-posting-website/pkg/config"
	"github.com/musab05/blog-posting-website/pkg/logger"
	"github.com/musab05/blog-posting-website/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, zapLog)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, cfg, zapLog)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
