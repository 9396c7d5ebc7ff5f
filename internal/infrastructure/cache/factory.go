package cache

import (
	"time"

	"github.com/towntreasure/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewProductCache creates a product cache based on configuration. When
// Redis is enabled but unreachable the factory falls back to the
// in-memory cache so the storefront keeps serving.
func NewProductCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) ProductCache {
	if cfg.Enabled {
		redisCache, err := NewRedisProductCache(cfg, ttl)
		if err == nil {
			logger.Info("using Redis product cache", zap.String("addr", cfg.Addr()))
			return redisCache
		}
		logger.Warn("Redis unavailable, falling back to in-memory product cache",
			zap.Error(err),
		)
	}

	return NewInMemoryProductCache(
		WithTTL(ttl),
		WithCacheLogger(logger),
	)
}
