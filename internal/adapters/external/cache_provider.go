package external

import (
	"context"
	"sync"
	"time"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// hitCounter tracks hit/miss totals for a cache backend
type hitCounter struct {
	hits   int64
	misses int64
	mutex  sync.RWMutex
}

func (s *hitCounter) recordHit() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hits++
}

func (s *hitCounter) recordMiss() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.misses++
}

func (s *hitCounter) snapshot(now time.Time) ports.CacheStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := s.hits + s.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        s.hits,
		Misses:      s.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: now,
	}
}

func validateCacheKey(key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	return nil
}

func validateCacheEntry(key string, value []byte, ttl time.Duration) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}
	return nil
}

// InstrumentedCacheProvider reports hits and misses of a CacheProvider to the metrics collector
type InstrumentedCacheProvider struct {
	ports.CacheProvider
	metrics ports.MetricsCollector
}

// NewInstrumentedCacheProvider wraps provider so every Get is counted
func NewInstrumentedCacheProvider(provider ports.CacheProvider, metrics ports.MetricsCollector) *InstrumentedCacheProvider {
	return &InstrumentedCacheProvider{CacheProvider: provider, metrics: metrics}
}

// Get delegates to the wrapped provider and records the outcome
func (c *InstrumentedCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.CacheProvider.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.RecordCacheHit(ctx)
	case errors.IsNotFoundError(err):
		c.metrics.RecordCacheMiss(ctx)
	}
	return data, err
}

// WeatherMetricsAdapter implements WeatherMetrics port
type WeatherMetricsAdapter struct {
	cacheMetrics    ports.CacheMetrics
	providerManager ports.WeatherProviderManager
	cacheEnabled    bool
}

// NewWeatherMetricsAdapter creates a new weather metrics adapter
func NewWeatherMetricsAdapter(cacheMetrics ports.CacheMetrics, manager ports.WeatherProviderManager, cacheEnabled bool) ports.WeatherMetrics {
	return &WeatherMetricsAdapter{
		cacheMetrics:    cacheMetrics,
		providerManager: manager,
		cacheEnabled:    cacheEnabled,
	}
}

// GetProviderInfo returns provider information
func (m *WeatherMetricsAdapter) GetProviderInfo() map[string]interface{} {
	providerInfo := m.providerManager.GetProviderInfo()

	result := map[string]interface{}{
		"status":        "active",
		"cache_enabled": m.cacheEnabled,
	}
	for _, key := range []string{"provider_order", "total_providers", "fallback_enabled", "logging_enabled"} {
		if value, ok := providerInfo[key]; ok {
			result[key] = value
		}
	}
	if order, ok := providerInfo["provider_order"].([]string); ok && len(order) > 0 {
		result["primary_provider"] = order[0]
	}

	return result
}

// GetCacheMetrics returns cache performance metrics
func (m *WeatherMetricsAdapter) GetCacheMetrics() (ports.CacheStats, error) {
	if m.cacheMetrics == nil {
		return ports.CacheStats{LastUpdated: time.Now()}, nil
	}
	return m.cacheMetrics.GetStats(), nil
}
