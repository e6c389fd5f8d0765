package router

import (
	"log"
	"strings"

	"github.com/ahkili-app/backend/internal/handlers"
	"github.com/ahkili-app/backend/internal/notifier"
	"github.com/ahkili-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, allowedOrigins string) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: strings.Split(allowedOrigins, ","),
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, n *notifier.Notifier) {
	if err := AutoMigrate(pgdb); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Welcome to Ahkili API", "docs": "/health"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	communityRepo := repositories.NewPostgresCommunityRepository(pgdb)
	followerRepo := repositories.NewPostgresFollowerRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	postReactionRepo := repositories.NewPostgresPostReactionRepository(pgdb)
	commentReactionRepo := repositories.NewPostgresCommentReactionRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	preferenceRepo := repositories.NewPostgresPreferenceRepository(pgdb)
	hotlineRepo := repositories.NewPostgresHotlineRepository(pgdb)
	verificationRepo := repositories.NewPostgresVerificationRepository(pgdb)

	// User routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(e.Group("/users"))
	log.Println("User routes configured.")

	// Community routes
	communityHandler := handlers.NewCommunityHandler(communityRepo, followerRepo, postRepo, userRepo)
	communityHandler.RegisterCommunityRoutes(e.Group("/communities"))
	log.Println("Community routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, communityRepo, postReactionRepo, commentRepo, n)
	postHandler.RegisterPostRoutes(e.Group("/posts"))
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, commentReactionRepo, n)
	commentHandler.RegisterCommentRoutes(e.Group("/comments"))
	log.Println("Comment routes configured.")

	// Post reaction routes
	reactionHandler := handlers.NewReactionHandler(postReactionRepo, postRepo, userRepo, n)
	reactionHandler.RegisterReactionRoutes(e.Group("/reactions"))
	log.Println("Reaction routes configured.")

	// Comment reaction routes
	commentReactionHandler := handlers.NewCommentReactionHandler(commentReactionRepo, commentRepo, userRepo, n)
	commentReactionHandler.RegisterCommentReactionRoutes(e.Group("/comment-reactions"))
	log.Println("Comment reaction routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, preferenceRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(e.Group("/notification"))
	log.Println("Notification routes configured.")

	// Hotline routes
	hotlineHandler := handlers.NewHotlineHandler(hotlineRepo)
	hotlineHandler.RegisterHotlineRoutes(e.Group("/hotlines"))
	log.Println("Hotline routes configured.")

	// Verification routes
	verificationHandler := handlers.NewVerificationHandler(verificationRepo, userRepo)
	verificationHandler.RegisterVerificationRoutes(e.Group("/verification"))
	log.Println("Verification routes configured.")

	log.Println("All routes configured.")
}
