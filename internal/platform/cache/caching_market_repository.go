// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_compare/internal/feature/compare/domain/entity"
	"stock_compare/internal/feature/compare/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis
// caching of raw provider responses. It implements the decorator
// pattern, transparently adding caching without modifying the
// underlying repository. Only fetched price series are cached; derived
// values (normalized series, metrics) stay request-scoped and are
// recomputed every time.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 1 hour. If namespace is empty, it uses "prices".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetMonthlyCloses retrieves a price series, checking cache first then
// falling back to the provider. Provider errors are never cached.
func (c *CachingMarketRepository) GetMonthlyCloses(ctx context.Context, symbol string, from, to time.Time) (entity.PriceSeries, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetMonthlyCloses(ctx, symbol, from, to)
	}

	key := c.cacheKey(symbol, from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.PriceSeries
		if err := json.Unmarshal(b, &out); err == nil && len(out.Points) > 0 {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider
	out, err := c.inner.GetMonthlyCloses(ctx, symbol, from, to)
	if err != nil {
		return entity.PriceSeries{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific symbol and window.
// Window bounds are truncated to the day so requests within the same
// day share an entry.
func (c *CachingMarketRepository) cacheKey(symbol string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(symbol),
		from.UTC().Format("2006-01-02"),
		to.UTC().Format("2006-01-02"),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
