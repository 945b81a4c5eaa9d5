package config

import "time"

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// upstream generation provider
	OpenRouterKey  string
	OpenRouterURL  string
	GeneratorModel string
	AppURL         string
	AppName        string

	// optional infrastructure; empty means in-memory fallbacks
	RedisURL  string
	JWTSecret string

	CORSOrigins []string

	// ulule formatted rates, e.g. "5-M"
	GenerateRateAnonymous  string
	GenerateRateIdentified string

	CacheTTL        time.Duration
	CacheCapacity   int
	SessionCapacity int
	SessionTTL      time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
