package external

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"cropcast.app/internal/config"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

const redisConnectTimeout = 5 * time.Second

// RedisCacheProviderAdapter implements CacheProvider port using Redis
type RedisCacheProviderAdapter struct {
	client *redis.Client
	stats  hitCounter
}

// NewRedisCacheProviderAdapter creates a new Redis cache provider adapter
func NewRedisCacheProviderAdapter(config *config.RedisConfig) (*RedisCacheProviderAdapter, error) {
	if config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Duration(config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewExternalAPIError("failed to connect to Redis", err)
	}

	return &RedisCacheProviderAdapter{
		client: client,
	}, nil
}

// Get retrieves a value from Redis cache
func (r *RedisCacheProviderAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateCacheKey(key); err != nil {
		return nil, err
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			r.stats.recordMiss()
			return nil, errors.NewNotFoundError("cache miss")
		}
		return nil, errors.NewExternalAPIError("redis get operation failed", err)
	}

	r.stats.recordHit()
	return val, nil
}

// Set stores a value in Redis cache with TTL
func (r *RedisCacheProviderAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateCacheEntry(key, value, ttl); err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.NewExternalAPIError("redis set operation failed", err)
	}
	return nil
}

// Delete removes a value from Redis cache
func (r *RedisCacheProviderAdapter) Delete(ctx context.Context, key string) error {
	if err := validateCacheKey(key); err != nil {
		return err
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.NewExternalAPIError("redis delete operation failed", err)
	}
	return nil
}

// Exists checks if a key exists in Redis cache
func (r *RedisCacheProviderAdapter) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateCacheKey(key); err != nil {
		return false, err
	}

	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.NewExternalAPIError("redis exists operation failed", err)
	}
	return count > 0, nil
}

// Clear removes all keys from the Redis database
func (r *RedisCacheProviderAdapter) Clear(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("redis clear operation failed", err)
	}
	return nil
}

// GetStats returns cache statistics
func (r *RedisCacheProviderAdapter) GetStats() ports.CacheStats {
	return r.stats.snapshot(time.Now())
}

// RecordHit increments the cache hit counter
func (r *RedisCacheProviderAdapter) RecordHit() {
	r.stats.recordHit()
}

// RecordMiss increments the cache miss counter
func (r *RedisCacheProviderAdapter) RecordMiss() {
	r.stats.recordMiss()
}

// Close closes the Redis client connection
func (r *RedisCacheProviderAdapter) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewExternalAPIError("failed to close Redis connection", err)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisCacheProviderAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewExternalAPIError("Redis ping failed", err)
	}
	return nil
}
