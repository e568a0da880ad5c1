package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when no TTL is configured
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache  *goCache.Cache
	ttl    time.Duration
	logger *logger.Logger
}

func NewInMemoryCache(cfg *config.Configuration, logger *logger.Logger) *InMemoryCache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &InMemoryCache{
		cache:  goCache.New(ttl, DefaultCleanupInterval),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	span := StartCacheSpan(ctx, "inmemory", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	raw, found := c.cache.Get(key)
	if !found {
		return false
	}
	data, ok := raw.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		SetSpanError(span, err)
		c.logger.Warnw("dropping undecodable cache entry", "key", key, "error", err)
		c.cache.Delete(key)
		return false
	}
	SetSpanSuccess(span)
	return true
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if expiration <= 0 {
		expiration = c.ttl
	}
	c.cache.Set(key, data, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
