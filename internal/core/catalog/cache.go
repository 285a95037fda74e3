package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phamduy/lodex/internal/platform/constants"
	"github.com/phamduy/lodex/internal/platform/ctxutil"
)

// RedisNameCache is a read-through cache for resolved display names.
//
// # Degradation
//
// Redis failures are logged at debug level and treated as cache misses.
// A broken cache slows the hot path down; it never breaks it.
type RedisNameCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisNameCache(client *redis.Client, ttl time.Duration) *RedisNameCache {
	return &RedisNameCache{client: client, ttl: ttl}
}

func (cache *RedisNameCache) Get(context context.Context, entityID int64, languageCode string) (string, bool) {
	text, err := cache.client.Get(context, cacheKey(entityID, languageCode)).Result()
	if err != nil {
		if err != redis.Nil {
			ctxutil.GetLogger(context).DebugContext(context, "name_cache_get_failed",
				slog.Int64("entity_id", entityID),
				slog.Any("error", err),
			)
		}
		return "", false
	}
	return text, true
}

func (cache *RedisNameCache) Set(context context.Context, entityID int64, languageCode string, text string) {
	if err := cache.client.Set(context, cacheKey(entityID, languageCode), text, cache.ttl).Err(); err != nil {
		ctxutil.GetLogger(context).DebugContext(context, "name_cache_set_failed",
			slog.Int64("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

func cacheKey(entityID int64, languageCode string) string {
	return fmt.Sprintf("%s%d:%s", constants.RedisPrefixDisplayName, entityID, languageCode)
}
