package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/towntreasure/backend/internal/domain/catalog"
	"github.com/towntreasure/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const productListKey = "catalog:products"

// RedisProductCache implements ProductCache backed by Redis, for
// deployments where several storefront instances share one catalog.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a Redis-backed product cache and verifies
// the connection
func NewRedisProductCache(cfg config.RedisConfig, ttl time.Duration) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &RedisProductCache{client: client, ttl: ttl}, nil
}

// GetList returns the cached product listing, or nil on a miss
func (c *RedisProductCache) GetList(ctx context.Context) ([]catalog.Product, error) {
	data, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cached products: %w", err)
	}
	return products, nil
}

// SetList stores the product listing with the configured TTL
func (c *RedisProductCache) SetList(ctx context.Context, products []catalog.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	return c.client.Set(ctx, productListKey, data, c.ttl).Err()
}

// Invalidate drops the cached listing
func (c *RedisProductCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, productListKey).Err()
}

// Close closes the Redis connection
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// Ensure RedisProductCache implements ProductCache
var _ ProductCache = (*RedisProductCache)(nil)
