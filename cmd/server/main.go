package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-demo/studyhub/internal/config"
	"github.com/go-demo/studyhub/internal/handler"
	"github.com/go-demo/studyhub/internal/middleware"
	"github.com/go-demo/studyhub/internal/pkg/cache"
	"github.com/go-demo/studyhub/internal/pkg/database"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/repository"
	"github.com/go-demo/studyhub/internal/service"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title           StudyHub API
// @version         1.0
// @description     Go 讀書會討論室系統 API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.Log.Level)
	defer logger.Sync()

	logger.Info("Starting studyhub server",
		zap.String("mode", cfg.Server.Mode),
		zap.Int("port", cfg.Server.Port),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.NewPostgres(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db, logger)

	// Initialize Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close(redisClient, logger)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	tokenCache := cache.NewCache(redisClient, logger)
	authService := service.NewAuthService(userRepo, jwtManager, tokenCache, cfg.JWT.RefreshTokenTTL, logger)
	roomService := service.NewRoomService(roomRepo, topicRepo, messageRepo, logger)
	messageService := service.NewMessageService(messageRepo, roomRepo, logger)
	userService := service.NewUserService(userRepo, roomRepo, messageRepo, topicRepo, logger)
	topicService := service.NewTopicService(topicRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(userService)
	topicHandler := handler.NewTopicHandler(topicService)

	// Setup router
	router := setupRouter(
		cfg,
		logger,
		jwtManager,
		redisClient,
		authHandler,
		roomHandler,
		messageHandler,
		userHandler,
		topicHandler,
	)

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server is running",
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	return logger
}

func setupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *utils.JWTManager,
	redisClient *redis.Client,
	authHandler *handler.AuthHandler,
	roomHandler *handler.RoomHandler,
	messageHandler *handler.MessageHandler,
	userHandler *handler.UserHandler,
	topicHandler *handler.TopicHandler,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public, rate limited by IP)
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit(redisClient))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Auth routes (protected)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.Auth(jwtManager))
		{
			authProtected.POST("/logout", authHandler.Logout)
			authProtected.GET("/me", authHandler.GetMe)
		}

		// Room routes, browse and detail are public
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomHandler.Browse)
			rooms.GET("/:id", roomHandler.GetByID)
		}

		roomsProtected := v1.Group("/rooms")
		roomsProtected.Use(middleware.Auth(jwtManager))
		{
			roomsProtected.POST("", roomHandler.Create)
			roomsProtected.GET("/:id/edit", roomHandler.GetForEdit)
			roomsProtected.PUT("/:id", roomHandler.Update)
			roomsProtected.DELETE("/:id", roomHandler.Delete)

			roomsProtected.POST("/:id/messages",
				middleware.MessageRateLimit(redisClient),
				messageHandler.Post,
			)
		}

		// Message routes
		messages := v1.Group("/messages")
		{
			messages.GET("/:id", messageHandler.GetByID)
		}

		messagesProtected := v1.Group("/messages")
		messagesProtected.Use(middleware.Auth(jwtManager))
		{
			messagesProtected.DELETE("/:id", messageHandler.Delete)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.GetProfile)
		}

		usersProtected := v1.Group("/users")
		usersProtected.Use(middleware.Auth(jwtManager))
		{
			usersProtected.PUT("/me", userHandler.UpdateBio)
			usersProtected.DELETE("/me", userHandler.DeleteAccount)
		}

		// Topic routes
		topics := v1.Group("/topics")
		{
			topics.GET("", topicHandler.Search)
		}
	}

	return router
}
