package main

import (
	"log"

	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/ahkili-app/backend/internal/router"
	"github.com/ahkili-app/backend/pkg/config"
	"github.com/ahkili-app/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Notification fan-out engine
	n := notifier.New(
		repositories.NewPostgresNotificationRepository(db.Postgres),
		repositories.NewPostgresPreferenceRepository(db.Postgres),
		repositories.NewPostgresFollowerRepository(db.Postgres),
		cfg.FanoutWorkers,
	)
	defer n.Close() // Drain queued fan-outs before shutdown

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, cfg.AllowedOrigins)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, n)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
