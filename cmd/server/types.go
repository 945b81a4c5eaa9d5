package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"codeberg.org/wexar/server/internal/cache"
	"codeberg.org/wexar/server/internal/config"
	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/llm"
	"codeberg.org/wexar/server/internal/ratelimit"
	"codeberg.org/wexar/server/internal/sessions"
)

// holds all dependencies and state for the API server
type Server struct {
	config     *config.Config
	redis      *redis.Client // nil when REDIS_URL is unset
	services   *Services
	sessionMgr *sessions.Manager
	limiter    *ratelimit.Limiter
	router     *gin.Engine
	startedAt  time.Time
}

// holds the generation pipeline and its collaborators
type Services struct {
	LLM       *llm.OpenRouterClient
	Cache     cache.Store[generator.Result]
	Generator *generator.Generator
}
