package reviews

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache backs the review cache with Redis so replicas share one TTL
// window. Any Redis error degrades to a cache miss; the review source itself
// remains the fallback.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed review cache.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Review, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("review cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var reviews []Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		c.logger.Warn("review cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return reviews, true
}

func (c *RedisCache) Set(ctx context.Context, key string, reviews []Review) {
	raw, err := json.Marshal(reviews)
	if err != nil {
		c.logger.Warn("review cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("review cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(key string) string {
	return "porchlight:reviews:" + key
}
