package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/musab05/blog-posting-website/internal/handlers"
	"github.com/musab05/blog-posting-website/internal/middleware"
	"github.com/musab05/blog-posting-website/internal/models"
	"github.com/musab05/blog-posting-website/internal/repositories"
	"github.com/musab05/blog-posting-website/pkg/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(requestLogger(log))
	log.Info("Global middleware configured.")
}

// requestLogger logs every request with method, path, status and latency
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.Like{},
		&models.View{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to auto migrate models", zap.Error(err))
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded files
	e.Static("/storage", cfg.StorageDir)

	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	blogRepo := repositories.NewPostgresBlogRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	engagementRepo := repositories.NewPostgresEngagementRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// Auth routes
	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	authHandler.RegisterAuthRoutes(authGroup, auth)
	log.Info("Auth routes configured.")

	// Blog routes (create, lifecycle, comments, engagement)
	blogGroup := e.Group("/blogs")
	blogHandler := handlers.NewBlogHandler(blogRepo, userRepo, commentRepo, followRepo, notificationRepo, log)
	blogHandler.RegisterBlogRoutes(blogGroup, auth)
	commentHandler := handlers.NewCommentHandler(commentRepo, blogRepo, userRepo, notificationRepo, log)
	commentHandler.RegisterCommentRoutes(blogGroup, auth)
	engagementHandler := handlers.NewEngagementHandler(engagementRepo, blogRepo, userRepo, notificationRepo, log)
	engagementHandler.RegisterEngagementRoutes(blogGroup, auth)
	log.Info("Blog routes configured.")

	// Profile and follow routes
	profileGroup := e.Group("/profile")
	profileHandler := handlers.NewProfileHandler(userRepo, blogRepo, followRepo)
	profileHandler.RegisterProfileRoutes(profileGroup, auth)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo, log)
	followHandler.RegisterFollowRoutes(profileGroup, auth)
	log.Info("Profile routes configured.")

	// Notification routes (all protected)
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(auth)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, followRepo)
	notificationHandler.RegisterNotificationRoutes(notificationGroup)
	log.Info("Notification routes configured.")

	// Dashboard routes
	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(auth)
	dashboardHandler := handlers.NewDashboardHandler(blogRepo, followRepo)
	dashboardHandler.RegisterDashboardRoutes(dashboardGroup)
	log.Info("Dashboard routes configured.")

	// Discovery routes (public)
	discoveryGroup := e.Group("/discovery")
	discoveryHandler := handlers.NewDiscoveryHandler(blogRepo, userRepo)
	discoveryHandler.RegisterDiscoveryRoutes(discoveryGroup)
	log.Info("Discovery routes configured.")

	// Upload routes
	apiGroup := e.Group("/api")
	uploadHandler := handlers.NewUploadHandler(cfg.StorageDir, log)
	uploadHandler.RegisterUploadRoutes(apiGroup)
	log.Info("Upload routes configured.")

	log.Info("All routes configured.")
}
