package caches

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/services/cache"
)

type MemoryCache struct {
	data        sync.Map // map[string][]byte
	metadata    sync.Map // map[string]*MemoryCacheEntry
	maxSize     int64
	currentSize atomic.Int64
	ttl         time.Duration
	logger      *zap.Logger
	stop        chan struct{}
	stopOnce    sync.Once

	// Statistics
	hits   atomic.Int64
	misses atomic.Int64
}

type MemoryCacheEntry struct {
	Size       int64
	CreatedAt  time.Time
	lastAccess atomic.Int64 // unix nanos
}

// NewMemoryCache creates a size-bounded cache whose entries expire after ttl.
// Call Close to stop the background expiry loop.
func NewMemoryCache(maxSizeBytes int64, ttl time.Duration, logger *zap.Logger) *MemoryCache {
	mc := &MemoryCache{
		maxSize: maxSizeBytes,
		ttl:     ttl,
		logger:  logger,
		stop:    make(chan struct{}),
	}

	go mc.cleanupExpired()

	return mc
}

func (mc *MemoryCache) Name() string {
	return "MEMORY"
}

func (mc *MemoryCache) Store(_ context.Context, key string, data []byte) error {
	size := int64(len(data))
	if size > mc.maxSize {
		return fmt.Errorf("entry %s of %d bytes exceeds cache size %d", key, size, mc.maxSize)
	}

	// Replacing an entry frees its old size first.
	mc.remove(key)

	for mc.currentSize.Load()+size > mc.maxSize {
		if !mc.evictLRU() {
			return fmt.Errorf("unable to free space for entry of size %d", size)
		}
	}

	now := time.Now()
	entry := &MemoryCacheEntry{Size: size, CreatedAt: now}
	entry.lastAccess.Store(now.UnixNano())

	mc.data.Store(key, data)
	mc.metadata.Store(key, entry)
	mc.currentSize.Add(size)
	mc.logger.Debug("memory cache: stored entry", zap.String("key", key), zap.Int64("bytes", size))

	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	meta, ok := mc.metadata.Load(key)
	if ok && mc.expired(meta.(*MemoryCacheEntry), time.Now()) {
		mc.remove(key)
		ok = false
	}
	if ok {
		if value, found := mc.data.Load(key); found {
			meta.(*MemoryCacheEntry).lastAccess.Store(time.Now().UnixNano())
			mc.hits.Add(1)
			return value.([]byte), nil
		}
	}

	mc.misses.Add(1)
	return nil, cache.ErrMiss
}

func (mc *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	meta, ok := mc.metadata.Load(key)
	if !ok {
		return false, nil
	}
	return !mc.expired(meta.(*MemoryCacheEntry), time.Now()), nil
}

func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.remove(key)
	return nil
}

func (mc *MemoryCache) remove(key string) {
	if meta, ok := mc.metadata.LoadAndDelete(key); ok {
		entry := meta.(*MemoryCacheEntry)
		mc.currentSize.Add(-entry.Size)
		mc.data.Delete(key)
	}
}

func (mc *MemoryCache) Clear(_ context.Context) error {
	mc.metadata.Range(func(key, value interface{}) bool {
		mc.remove(key.(string))
		return true
	})
	mc.hits.Store(0)
	mc.misses.Store(0)

	mc.logger.Info("memory cache: cleared all entries")
	return nil
}

func (mc *MemoryCache) GetStats(_ context.Context) cache.LayerStats {
	hits := mc.hits.Load()
	misses := mc.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	entries := 0
	mc.metadata.Range(func(key, value interface{}) bool {
		entries++
		return true
	})

	return cache.LayerStats{
		Name:      "Memory",
		Entries:   entries,
		SizeBytes: mc.currentSize.Load(),
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
	}
}

// Close stops the expiry loop.
func (mc *MemoryCache) Close() {
	mc.stopOnce.Do(func() { close(mc.stop) })
}

func (mc *MemoryCache) expired(entry *MemoryCacheEntry, now time.Time) bool {
	return mc.ttl > 0 && now.Sub(entry.CreatedAt) > mc.ttl
}

func (mc *MemoryCache) evictLRU() bool {
	var oldestKey string
	var oldest int64

	mc.metadata.Range(func(key, value interface{}) bool {
		access := value.(*MemoryCacheEntry).lastAccess.Load()
		if oldestKey == "" || access < oldest {
			oldestKey = key.(string)
			oldest = access
		}
		return true
	})

	if oldestKey == "" {
		return false
	}
	mc.remove(oldestKey)
	mc.logger.Debug("memory cache: evicted entry", zap.String("key", oldestKey))
	return true
}

// removeExpired drops every entry older than the TTL and returns how many were removed.
func (mc *MemoryCache) removeExpired(now time.Time) int {
	var expiredKeys []string
	mc.metadata.Range(func(key, value interface{}) bool {
		if mc.expired(value.(*MemoryCacheEntry), now) {
			expiredKeys = append(expiredKeys, key.(string))
		}
		return true
	})
	for _, key := range expiredKeys {
		mc.remove(key)
	}
	return len(expiredKeys)
}

func (mc *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-mc.stop:
			return
		case now := <-ticker.C:
			if n := mc.removeExpired(now); n > 0 {
				mc.logger.Debug("memory cache: cleaned up expired entries", zap.Int("count", n))
			}
		}
	}
}
