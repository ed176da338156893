package ports

import (
	"context"
	"time"
)

// WeatherData represents current conditions at a coordinate
type WeatherData struct {
	Temperature float64
	Humidity    float64
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	Timestamp   time.Time
}

// ReadingData is a single forecast sample. Either measurement may be absent.
type ReadingData struct {
	Time        time.Time
	Temperature *float64
	Humidity    *float64
	Description string
}

// ForecastData represents a provider forecast for a coordinate
type ForecastData struct {
	Latitude  float64
	Longitude float64
	Readings  []ReadingData
	Provider  string
	FetchedAt time.Time
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// WeatherProvider defines the contract for weather data providers
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*WeatherData, error)
	GetForecast(ctx context.Context, lat, lon float64) (*ForecastData, error)
	GetProviderName() string
}

// WeatherProviderManager defines the contract for managing multiple weather providers
type WeatherProviderManager interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*WeatherData, error)
	GetForecast(ctx context.Context, lat, lon float64) (*ForecastData, error)
	GetProviderInfo() map[string]interface{}
}

// WeatherCache defines the contract for caching weather data
type WeatherCache interface {
	GetCurrent(ctx context.Context, key string) (*WeatherData, error)
	SetCurrent(ctx context.Context, key string, weather *WeatherData, ttl time.Duration) error
	GetForecast(ctx context.Context, key string) (*ForecastData, error)
	SetForecast(ctx context.Context, key string, forecast *ForecastData, ttl time.Duration) error
}

// WeatherMetrics defines the contract for weather provider metrics
type WeatherMetrics interface {
	GetProviderInfo() map[string]interface{}
	GetCacheMetrics() (CacheStats, error)
}
