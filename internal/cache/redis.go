package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached lookups across API replicas
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewRedisCache(cfg *config.Configuration, logger *logger.Logger) *RedisCache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddress,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	span := StartCacheSpan(ctx, "redis", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			SetSpanError(span, err)
			c.logger.Warnw("redis get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		SetSpanError(span, err)
		c.client.Del(ctx, key)
		return false
	}
	SetSpanSuccess(span)
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if expiration <= 0 {
		expiration = c.ttl
	}
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		c.logger.Warnw("redis set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warnw("redis delete failed", "key", key, "error", err)
	}
}

func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("redis scan failed", "prefix", prefix, "error", err)
	}
}

func (c *RedisCache) Flush(ctx context.Context) {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		c.logger.Warnw("redis flush failed", "error", err)
	}
}

// Close releases the connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}
