package cache

import (
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/types"
)

var (
	_ Cache = (*InMemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
)

// NewCache picks the provider named by cache.provider
func NewCache(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache", "provider", cfg.Cache.Provider, "ttl", cfg.Cache.TTL)

	if cfg.Cache.Provider == types.CacheRedis {
		return NewRedisCache(cfg, log)
	}
	return NewInMemoryCache(cfg, log)
}
