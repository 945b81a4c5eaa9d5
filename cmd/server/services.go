package main

import (
	"github.com/redis/go-redis/v9"

	"codeberg.org/wexar/server/internal/cache"
	"codeberg.org/wexar/server/internal/config"
	"codeberg.org/wexar/server/internal/generator"
	"codeberg.org/wexar/server/internal/llm"
)

const resultCachePrefix = "wexar:generate:"

// creates the upstream client, result cache and generator
func InitializeServices(cfg *config.Config, redisClient *redis.Client) *Services {
	llmClient := llm.NewOpenRouterClient(llm.OpenRouterConfig{
		APIKey:  cfg.OpenRouterKey,
		BaseURL: cfg.OpenRouterURL,
		Model:   cfg.GeneratorModel,
		AppURL:  cfg.AppURL,
		AppName: cfg.AppName,
	})

	var resultCache cache.Store[generator.Result]
	if redisClient != nil {
		resultCache = cache.NewRedisStore[generator.Result](redisClient, resultCachePrefix)
	} else {
		resultCache = cache.NewMemoryStore[generator.Result](cfg.CacheCapacity)
	}

	genConfig := generator.DefaultConfig()
	genConfig.Model = cfg.GeneratorModel
	genConfig.CacheTTL = cfg.CacheTTL

	return &Services{
		LLM:       llmClient,
		Cache:     resultCache,
		Generator: generator.New(llmClient, resultCache, genConfig),
	}
}
