package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/services/cache"
)

const (
	componentsCacheKey   = "components:active"
	complexitiesCacheKey = "complexities:active"
)

// CatalogCache keeps the active component and complexity listings in a cache layer.
// A nil layer disables caching.
type CatalogCache struct {
	layer  cache.CacheLayer
	logger *zap.Logger
}

func NewCatalogCache(layer cache.CacheLayer, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{layer: layer, logger: logger}
}

// Stats returns the statistics of the underlying layer.
func (c *CatalogCache) Stats(ctx context.Context) (cache.LayerStats, bool) {
	if c == nil || c.layer == nil {
		return cache.LayerStats{}, false
	}
	return c.layer.GetStats(ctx), true
}

// Clear drops every cached listing.
func (c *CatalogCache) Clear(ctx context.Context) error {
	if c == nil || c.layer == nil {
		return nil
	}
	return c.layer.Clear(ctx)
}

// Invalidate drops the given listings. Failures are logged; a stale entry expires with its TTL.
func (c *CatalogCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.layer == nil {
		return
	}
	// The write has already committed, so a cancelled request still invalidates.
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := c.layer.Delete(ctx, key); err != nil {
			c.logger.Warn("catalog cache: invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// cached returns the listing under key, calling load and storing its result on a miss.
func cached[T any](ctx context.Context, c *CatalogCache, key string, load func() (T, error)) (T, error) {
	if c == nil || c.layer == nil {
		return load()
	}

	if data, err := c.layer.Get(ctx, key); err == nil {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			metrics.RecordCache(c.layer.Name(), true)
			return out, nil
		}
		c.logger.Warn("catalog cache: dropping undecodable entry", zap.String("key", key))
		_ = c.layer.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("catalog cache: read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.RecordCache(c.layer.Name(), false)

	out, err := load()
	if err != nil {
		return out, err
	}
	if data, err := json.Marshal(out); err == nil {
		if err := c.layer.Store(ctx, key, data); err != nil {
			c.logger.Warn("catalog cache: store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
