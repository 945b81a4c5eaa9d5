package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultGeneratorModel  = "mistralai/devstral-2512:free"
	defaultAppURL          = "https://wexar.ai"
	defaultAppName         = "Wexar AI Website Generator"
	defaultCORSOrigins     = "http://localhost:3000"
	defaultRateAnonymous   = "5-M"
	defaultRateIdentified  = "15-M"
	defaultCacheTTL        = time.Hour
	defaultCacheCapacity   = 1000
	defaultSessionCapacity = 10000
	defaultSessionTTL      = 24 * time.Hour
)

// loads configuration from environment variables.
// the upstream API key is optional: a missing key is reported per
// generation request and the server still starts.
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cacheTTL, err := durationEnv("CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	cacheCapacity, err := intEnv("CACHE_CAPACITY", defaultCacheCapacity)
	if err != nil {
		return nil, err
	}

	sessionCapacity, err := intEnv("SESSION_CAPACITY", defaultSessionCapacity)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := durationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                   getEnv("PORT", defaultPort),
		Environment:            getEnv("ENVIRONMENT", "development"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		OpenRouterKey:          os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterURL:          getEnv("OPENROUTER_BASE_URL", defaultOpenRouterURL),
		GeneratorModel:         getEnv("GENERATOR_MODEL", defaultGeneratorModel),
		AppURL:                 getEnv("APP_URL", defaultAppURL),
		AppName:                getEnv("APP_NAME", defaultAppName),
		RedisURL:               os.Getenv("REDIS_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", defaultCORSOrigins)),
		GenerateRateAnonymous:  getEnv("GENERATE_RATE_ANON", defaultRateAnonymous),
		GenerateRateIdentified: getEnv("GENERATE_RATE_USER", defaultRateIdentified),
		CacheTTL:               cacheTTL,
		CacheCapacity:          cacheCapacity,
		SessionCapacity:        sessionCapacity,
		SessionTTL:             sessionTTL,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}

	return val, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}

	return val, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
