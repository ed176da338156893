package external

import (
	"context"
	"fmt"

	"cropcast.app/internal/config"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// CacheBackend is a CacheProvider that also reports stats and liveness
type CacheBackend interface {
	ports.CacheProvider
	ports.CacheMetrics
	Ping(ctx context.Context) error
}

type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (CacheBackend, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		redisProvider, err := NewRedisCacheProviderAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisProvider, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
