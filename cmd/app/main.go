package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"coding_challenge_api/internal/api"
	"coding_challenge_api/internal/challengegen"
	"coding_challenge_api/internal/llm"
	"coding_challenge_api/internal/middleware"
	"coding_challenge_api/internal/repository"
	"coding_challenge_api/internal/service"
	"coding_challenge_api/pkg/auth"
	"coding_challenge_api/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	provider, err := llm.NewProvider(context.Background(), cfg.LLM)
	if err != nil {
		zapLogger.Fatal("Failed to initialize llm provider", zap.Error(err))
	}
	zapLogger.Info("Using llm provider", zap.String("model", provider.ModelID()))

	generator := challengegen.New(provider, cfg.Generator)
	challengeService := service.NewChallengeService(repo, generator)
	tokenAuth := auth.NewTokenAuth(cfg.Auth.JWTSecret, cfg.Auth.DebugMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewChallengeRoutes(a, challengeService, tokenAuth)
	api.NewWebhookRoutes(a, challengeService, cfg.Clerk.WebhookSecret)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
