package external

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// MemoryCacheProvider is a process-local CacheProvider with per-entry expiry
type MemoryCacheProvider struct {
	data  map[string]memoryCacheItem
	mutex sync.RWMutex
	clock clockwork.Clock
	stats hitCounter
}

type memoryCacheItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return NewMemoryCacheProviderWithClock(clockwork.NewRealClock())
}

func NewMemoryCacheProviderWithClock(clock clockwork.Clock) *MemoryCacheProvider {
	return &MemoryCacheProvider{
		data:  make(map[string]memoryCacheItem),
		clock: clock,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateCacheKey(key); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists || !c.clock.Now().Before(item.expiresAt) {
		c.stats.recordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.stats.recordHit()
	return item.data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateCacheEntry(key, value, ttl); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = memoryCacheItem{
		data:      value,
		expiresAt: c.clock.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateCacheKey(key); err != nil {
		return false, err
	}

	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	return exists && c.clock.Now().Before(item.expiresAt), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]memoryCacheItem)
	return nil
}

// Purge drops expired entries and returns how many were removed
func (c *MemoryCacheProvider) Purge() int {
	now := c.clock.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, item := range c.data {
		if !now.Before(item.expiresAt) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// Ping always succeeds for the in-process cache
func (c *MemoryCacheProvider) Ping(ctx context.Context) error {
	return nil
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	return c.stats.snapshot(c.clock.Now())
}

func (c *MemoryCacheProvider) RecordHit() {
	c.stats.recordHit()
}

func (c *MemoryCacheProvider) RecordMiss() {
	c.stats.recordMiss()
}
