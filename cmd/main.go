package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/handler"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/middleware"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/model"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/internal/repository"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/config"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/database"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/jwtutil"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/logger"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/metrics"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found or error loading: %v\n", err)
	}

	// Load configuration
	conf, err := config.Load("seller")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations
	if err := database.MigrateModels(&model.User{}, &model.Seller{}); err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Initialize JWT utility
	jwtConfig := &jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	}
	jwt := jwtutil.NewJWTUtil(jwtConfig)

	// Initialize HTTP metrics
	httpMetrics := metrics.NewHTTPMetrics(conf.ServiceName)

	// Initialize repositories and handlers
	sellerRepo := repository.NewSellerRepository(db, log)
	authHandler := handler.NewAuthHandler(jwt)
	sellerHandler := handler.NewSellerHandler(sellerRepo)
	sellerAdminHandler := handler.NewSellerAdminHandler(sellerRepo)
	sellerEventHandler := handler.NewSellerEventHandler(sellerRepo)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Seller self-service routes - require authentication
	sellers := e.Group("/sellers")
	sellers.Use(middleware.JWTAuthMiddleware(jwt))

	sellers.POST("", sellerHandler.Onboard)
	sellers.GET("/me", sellerHandler.GetMe)
	sellers.GET("/me/eligibility", sellerHandler.GetEligibility)
	sellers.PUT("/me/bank-details", sellerHandler.UpdateBankDetails)
	sellers.PUT("/me/address", sellerHandler.UpdateAddress)
	sellers.PUT("/me/cod", sellerHandler.UpdateCODSettings)

	// Event ingest routes - called by the order, payment, review and
	// catalog services
	sellers.POST("/:id/events/order", sellerEventHandler.RecordOrder)
	sellers.POST("/:id/events/earnings", sellerEventHandler.AddEarnings)
	sellers.POST("/:id/events/withdrawal", sellerEventHandler.RecordWithdrawal)
	sellers.POST("/:id/events/rating", sellerEventHandler.RecordRating)
	sellers.POST("/:id/events/products", sellerEventHandler.AdjustProductCount)

	// Admin routes - require admin role
	admin := e.Group("/admin/sellers")
	admin.Use(middleware.JWTAuthMiddleware(jwt))
	admin.Use(middleware.AdminOnlyMiddleware())

	admin.GET("", sellerAdminHandler.List)
	admin.GET("/summary", sellerAdminHandler.Summary)
	admin.GET("/top-rated", sellerAdminHandler.TopRated)
	admin.GET("/search", sellerAdminHandler.Search)
	admin.PUT("/:id/approve", sellerAdminHandler.Approve)
	admin.PUT("/:id/block", sellerAdminHandler.Block)
	admin.PUT("/:id/suspend", sellerAdminHandler.Suspend)
	admin.PUT("/:id/unsuspend", sellerAdminHandler.Unsuspend)
	admin.PUT("/:id/commission", sellerAdminHandler.UpdateCommissionRate)
	admin.PUT("/:id/statistics", sellerAdminHandler.UpdateStatistics)
	admin.POST("/:id/verify-document", sellerAdminHandler.VerifyDocument)

	// Placeholder route groups for the rest of the storefront API
	for _, prefix := range []string{"/products", "/orders", "/cart", "/payments", "/reviews", "/categories"} {
		e.Any(prefix, handler.NotImplemented)
		e.Any(prefix+"/*", handler.NotImplemented)
	}

	// Start server
	log.Info("Starting seller-service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
