package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/mini-instagram/backend/internal/handlers"
	"github.com/mini-instagram/backend/internal/middleware"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
	"github.com/mini-instagram/backend/internal/services"
	"github.com/mini-instagram/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", handlers.APIVersion)
	e.GET("/api/version", handlers.APIVersion)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("miniinstagram"))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize Services ---
	dispatcher := services.NewDispatcher(notificationRepo, userRepo)
	feedService := services.NewFeedService(followRepo, postRepo)
	cleaner := services.NewCleaner(userRepo, profileRepo, followRepo, postRepo, commentRepo, likeRepo, notificationRepo)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, cleaner, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api/v1")
	postHandler := handlers.NewPostHandler(postRepo, userRepo, cleaner)
	postHandler.RegisterPublicPostRoutes(public)

	feedHandler := handlers.NewFeedHandler(feedService, userRepo)
	feedHandler.RegisterPublicFeedRoutes(public)
	log.Println("Public post and trending routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	authHandler.RegisterAccountRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, profileRepo, followRepo, postRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, dispatcher)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, dispatcher, cleaner)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, dispatcher)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Staff routes ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.StaffOnly(userRepo))
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, commentRepo)
	adminHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
