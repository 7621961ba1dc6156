package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novavision/internal/classifier"
	"novavision/internal/config"
	"novavision/internal/generator"
	"novavision/internal/handler"
	"novavision/internal/huggingface"
	"novavision/internal/repository"
	"novavision/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env before the config file so ${HF_TOKEN} expands
	_ = godotenv.Load()

	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting NovaVision...")

	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.HuggingFace.Token == "" {
		logger.Fatal("HuggingFace API token not configured. Set HF_TOKEN or huggingface.token in configs/config.yml")
	}

	// Single inference client shared by both remote services. Constructed
	// here once and passed down so no component carries lazy global state.
	hfClient, err := huggingface.NewClient(huggingface.Config{
		BaseURL: cfg.HuggingFace.BaseURL,
		Token:   cfg.HuggingFace.Token,
		Timeout: cfg.HuggingFace.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize HuggingFace client", zap.Error(err))
	}

	// Initialize repository
	os.MkdirAll("./data", 0755)

	repo, err := repository.NewGenerationRepository(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	// Assemble the pipeline
	emotionClassifier := classifier.New(hfClient, cfg.Models.Classifier, logger)
	orchestrator := generator.New(hfClient, cfg.Models.Image, cfg.Models.ImageFallback, logger)
	pipeline := service.NewPipeline(emotionClassifier, orchestrator, repo, logger)

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(pipeline, repo, logger)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register routes
	apiHandler.RegisterRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("NovaVision is running",
		zap.String("port", cfg.Server.Port),
		zap.String("classifier_model", cfg.Models.Classifier),
		zap.String("image_model", cfg.Models.Image),
		zap.String("image_fallback_model", cfg.Models.ImageFallback))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
