package generator

import (
	"context"
	"strings"

	"codeberg.org/wexar/server/internal/logger"
)

// generate:<request id>:<first 50 characters of the prompt>:<edit|new>.
// empty when the request has no identifier, which disables caching.
func CacheKey(req Request) string {
	b := req.base()
	if b.ID == "" {
		return ""
	}

	mode := "new"
	if isEdit(req) {
		mode = "edit"
	}

	prefix := b.Prompt
	if runes := []rune(prefix); len(runes) > cacheKeyPromptPrefix {
		prefix = string(runes[:cacheKeyPromptPrefix])
	}

	return strings.Join([]string{"generate", b.ID, prefix, mode}, ":")
}

// cache failures only cost latency, so they are logged and ignored
func (g *Generator) cacheGet(ctx context.Context, key string) (Result, bool) {
	if g.cache == nil || key == "" {
		return Result{}, false
	}

	result, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("cache read failed", "cache_key", key, "error", err)
		return Result{}, false
	}

	return result, ok
}

func (g *Generator) cacheSet(ctx context.Context, key string, result Result) {
	if g.cache == nil || key == "" {
		return
	}

	if err := g.cache.Set(ctx, key, result, g.config.CacheTTL); err != nil {
		logger.FromContext(ctx).Warn("cache write failed", "cache_key", key, "error", err)
	}
}
