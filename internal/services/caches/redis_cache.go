package caches

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services/cache"
	"github.com/matiisnothere-15/septjunto/internal/storage"
)

const redisKeyPrefix = "catalog:"

type RedisCache struct {
	client *storage.RedisClient
	ttl    time.Duration
	logger *zap.Logger

	// Statistics
	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisCache(client *storage.RedisClient, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (rc *RedisCache) Name() string {
	return "REDIS"
}

func (rc *RedisCache) Store(ctx context.Context, key string, data []byte) error {
	if err := rc.client.SetBytes(ctx, redisKeyPrefix+key, data, rc.ttl); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	rc.logger.Debug("redis cache: stored entry", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.client.GetBytes(ctx, redisKeyPrefix+key)
	if err != nil {
		rc.misses.Add(1)
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if data == nil {
		rc.misses.Add(1)
		return nil, cache.ErrMiss
	}

	rc.hits.Add(1)
	return data, nil
}

func (rc *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rc.client.Exists(ctx, redisKeyPrefix+key)
	return n > 0, err
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.client.Delete(ctx, redisKeyPrefix+key)
}

func (rc *RedisCache) Clear(ctx context.Context) error {
	keys, err := rc.client.Keys(ctx, redisKeyPrefix+"*")
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := rc.client.Delete(ctx, keys...); err != nil {
			return err
		}
	}

	rc.hits.Store(0)
	rc.misses.Store(0)

	rc.logger.Info("redis cache: cleared entries", zap.Int("count", len(keys)))
	return nil
}

func (rc *RedisCache) GetStats(ctx context.Context) cache.LayerStats {
	hits := rc.hits.Load()
	misses := rc.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	keys, _ := rc.client.Keys(ctx, redisKeyPrefix+"*")

	return cache.LayerStats{
		Name:    "Redis",
		Entries: len(keys),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}
