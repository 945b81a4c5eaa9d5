package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"codeberg.org/wexar/server/internal/config"
	"codeberg.org/wexar/server/internal/logger"
	"codeberg.org/wexar/server/internal/ratelimit"
	"codeberg.org/wexar/server/internal/sessions"
	"codeberg.org/wexar/server/internal/storage"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}

		redisClient = client
	}

	store, err := ratelimit.NewStore(redisClient, ratelimit.DefaultPrefix)
	if err != nil {
		closeRedis(redisClient)
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	limiter, err := ratelimit.New(ratelimit.Config{
		Anonymous:  cfg.GenerateRateAnonymous,
		Identified: cfg.GenerateRateIdentified,
	}, store)
	if err != nil {
		closeRedis(redisClient)
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	services := InitializeServices(cfg, redisClient)

	if cfg.OpenRouterKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set, generation requests will fail")
	}

	logger.Info("services initialized",
		"model", services.LLM.Model(),
		"redis", redisClient != nil,
		"auth_tokens", cfg.JWTSecret != "",
		"cache_ttl", cfg.CacheTTL.String(),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config:     cfg,
		redis:      redisClient,
		services:   services,
		sessionMgr: sessions.NewManager(cfg.SessionTTL, cfg.SessionCapacity),
		limiter:    limiter,
		router:     router,
		startedAt:  time.Now(),
	}

	RegisterRoutes(router, server)

	return server, nil
}

// releases everything NewServer opened
func (s *Server) Close() {
	if err := s.services.Cache.Close(); err != nil {
		logger.ErrorErr(err, "failed to close result cache")
	}

	if err := s.sessionMgr.Close(); err != nil {
		logger.ErrorErr(err, "failed to close session manager")
	}

	closeRedis(s.redis)
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}

	if err := client.Close(); err != nil {
		logger.ErrorErr(err, "failed to close redis connection")
	}
}
