package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/towntreasure/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

const (
	defaultListTTL         = 30 * time.Second
	defaultCleanupInterval = 30 * time.Second
)

// ProductCache caches the full product listing in front of the database.
// A nil, nil return means a miss; errors are reserved for backend
// failures so callers can treat the cache as best-effort.
type ProductCache interface {
	GetList(ctx context.Context) ([]catalog.Product, error)
	SetList(ctx context.Context, products []catalog.Product) error
	Invalidate(ctx context.Context) error
	Close() error
}

// InMemoryProductCache implements ProductCache using in-process storage.
// Suitable for single-instance deployments, which is the common case for
// the local storefront.
type InMemoryProductCache struct {
	mu      sync.RWMutex
	list    []catalog.Product
	setAt   time.Time
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// InMemoryProductCacheOption is a functional option for configuring the cache
type InMemoryProductCacheOption func(*InMemoryProductCache)

// WithTTL sets the listing TTL
func WithTTL(ttl time.Duration) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		c.logger = logger
	}
}

// NewInMemoryProductCache creates a new in-memory product cache
func NewInMemoryProductCache(opts ...InMemoryProductCacheOption) *InMemoryProductCache {
	cache := &InMemoryProductCache{
		ttl:    defaultListTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// GetList returns the cached product listing, or nil on a miss
func (c *InMemoryProductCache) GetList(ctx context.Context) ([]catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.list == nil || time.Since(c.setAt) > c.ttl {
		atomic.AddInt64(&c.misses, 1)
		return nil, nil
	}

	atomic.AddInt64(&c.hits, 1)
	list := make([]catalog.Product, len(c.list))
	copy(list, c.list)
	return list, nil
}

// SetList stores the product listing
func (c *InMemoryProductCache) SetList(ctx context.Context, products []catalog.Product) error {
	list := make([]catalog.Product, len(products))
	copy(list, products)

	c.mu.Lock()
	c.list = list
	c.setAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached listing
func (c *InMemoryProductCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.list = nil
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryProductCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryProductCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemoryProductCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.list != nil && time.Since(c.setAt) > c.ttl {
				c.list = nil
			}
			c.mu.Unlock()
		}
	}
}

// Ensure InMemoryProductCache implements ProductCache
var _ ProductCache = (*InMemoryProductCache)(nil)
