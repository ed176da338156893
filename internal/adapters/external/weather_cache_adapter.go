package external

import (
	"context"
	"encoding/json"
	"time"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// JSONSerializer implements CacheSerializer with encoding/json
type JSONSerializer struct{}

func (JSONSerializer) Serialize(data interface{}) ([]byte, error) {
	return json.Marshal(data)
}

func (JSONSerializer) Deserialize(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}

// typedCache stores values through a CacheProvider using a serializer
type typedCache struct {
	cacheProvider ports.CacheProvider
	serializer    ports.CacheSerializer
}

func newTypedCache(cacheProvider ports.CacheProvider, serializer ports.CacheSerializer) typedCache {
	if serializer == nil {
		serializer = JSONSerializer{}
	}
	return typedCache{cacheProvider: cacheProvider, serializer: serializer}
}

func (c typedCache) load(ctx context.Context, key string, target interface{}) error {
	data, err := c.cacheProvider.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := c.serializer.Deserialize(data, target); err != nil {
		return errors.NewExternalAPIError("failed to deserialize cached value", err)
	}
	return nil
}

func (c typedCache) store(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := c.serializer.Serialize(value)
	if err != nil {
		return errors.NewExternalAPIError("failed to serialize cache value", err)
	}
	return c.cacheProvider.Set(ctx, key, data, ttl)
}

// WeatherCacheAdapter bridges generic CacheProvider to weather-specific WeatherCache
type WeatherCacheAdapter struct {
	cache typedCache
}

// NewWeatherCacheAdapter creates a weather cache adapter using generic cache provider
func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider, serializer ports.CacheSerializer) ports.WeatherCache {
	return &WeatherCacheAdapter{cache: newTypedCache(cacheProvider, serializer)}
}

// GetCurrent retrieves current conditions from cache
func (w *WeatherCacheAdapter) GetCurrent(ctx context.Context, key string) (*ports.WeatherData, error) {
	var weatherData ports.WeatherData
	if err := w.cache.load(ctx, key, &weatherData); err != nil {
		return nil, err
	}
	return &weatherData, nil
}

// SetCurrent stores current conditions in cache
func (w *WeatherCacheAdapter) SetCurrent(ctx context.Context, key string, weather *ports.WeatherData, ttl time.Duration) error {
	if weather == nil {
		return errors.NewValidationError("weather data cannot be nil")
	}
	return w.cache.store(ctx, key, weather, ttl)
}

// GetForecast retrieves a forecast from cache
func (w *WeatherCacheAdapter) GetForecast(ctx context.Context, key string) (*ports.ForecastData, error) {
	var forecast ports.ForecastData
	if err := w.cache.load(ctx, key, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// SetForecast stores a forecast in cache
func (w *WeatherCacheAdapter) SetForecast(ctx context.Context, key string, forecast *ports.ForecastData, ttl time.Duration) error {
	if forecast == nil {
		return errors.NewValidationError("forecast data cannot be nil")
	}
	return w.cache.store(ctx, key, forecast, ttl)
}

// PlaceCacheAdapter bridges generic CacheProvider to the geocoding PlaceCache
type PlaceCacheAdapter struct {
	cache typedCache
}

// NewPlaceCacheAdapter creates a place cache adapter using generic cache provider
func NewPlaceCacheAdapter(cacheProvider ports.CacheProvider, serializer ports.CacheSerializer) ports.PlaceCache {
	return &PlaceCacheAdapter{cache: newTypedCache(cacheProvider, serializer)}
}

func (p *PlaceCacheAdapter) Get(ctx context.Context, key string) (*ports.PlaceData, error) {
	var place ports.PlaceData
	if err := p.cache.load(ctx, key, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (p *PlaceCacheAdapter) Set(ctx context.Context, key string, place *ports.PlaceData, ttl time.Duration) error {
	if place == nil {
		return errors.NewValidationError("place data cannot be nil")
	}
	return p.cache.store(ctx, key, place, ttl)
}
