package main

import (
	"fmt"
	"net/http"
	"os"

	"finwatch/internal/config"
	"finwatch/internal/database"
	"finwatch/internal/handlers"
	"finwatch/internal/logger"
	"finwatch/internal/middleware"
	"finwatch/internal/services"
	"finwatch/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finwatch/internal/docs" // Import swagger docs
)

// @title           finwatch API
// @version         1.0
// @description     finwatch is a stock-watchlist backend: browse stocks, post comments, and track a personal portfolio.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db, appConfig.PasswordPepper)
	refreshTokenService := services.NewRefreshTokenService(db, appConfig.RefreshTokenDays, middleware.GenerateAccessToken)
	stockService := services.NewStockService(db)
	commentService := services.NewCommentService(db)
	portfolioService := services.NewPortfolioService(db, stockService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, refreshTokenService)
	stockHandler := handlers.NewStockHandler(stockService)
	commentHandler := handlers.NewCommentHandler(commentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Account routes
	account := api.Group("/account")
	account.POST("/register", authHandler.Register)
	account.POST("/login", authHandler.Login)
	account.POST("/refresh", authHandler.Refresh)
	account.POST("/revoke", middleware.AuthMiddleware(), authHandler.Revoke)

	// Stock routes: reads are public, writes require a bearer token
	stock := api.Group("/stock")
	stock.GET("", stockHandler.Query)
	stock.GET("/:id", stockHandler.GetByID)
	stock.GET("/symbol/:symbol", stockHandler.GetBySymbol)
	stock.POST("", middleware.AuthMiddleware(), stockHandler.Create)
	stock.PUT("/:id", middleware.AuthMiddleware(), stockHandler.Update)
	stock.DELETE("/:id", middleware.AuthMiddleware(), stockHandler.Delete)

	// Comment routes: reads are public, writes require a bearer token
	comment := api.Group("/comment")
	comment.GET("", commentHandler.GetAll)
	comment.GET("/:id", commentHandler.GetByID)
	comment.POST("/:stockId", middleware.AuthMiddleware(), commentHandler.Create)
	comment.PUT("/:id", middleware.AuthMiddleware(), commentHandler.Update)
	comment.DELETE("/:id", middleware.AuthMiddleware(), commentHandler.Delete)

	// Portfolio routes
	portfolio := api.Group("/portfolio")
	portfolio.Use(middleware.AuthMiddleware())
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Add)
	portfolio.DELETE("", portfolioHandler.Remove)

	log.Infof("Starting finwatch backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
