package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache      bool
	CacheTTL         time.Duration
	ForecastCacheTTL time.Duration
}

// GeocodingConfig represents reverse geocoding configuration
type GeocodingConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// AuthConfig represents account session configuration
type AuthConfig struct {
	SessionTTL time.Duration
}

// RecommendationConfig represents planting recommendation configuration
type RecommendationConfig struct {
	ForecastWindowSlots int
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// SchedulerConfig represents scheduler configuration
type SchedulerConfig struct {
	SessionCleanupSchedule string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetGeocodingConfig() GeocodingConfig
	GetAuthConfig() AuthConfig
	GetRecommendationConfig() RecommendationConfig
	GetServerConfig() ServerConfig
	GetSchedulerConfig() SchedulerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
	RecordWeatherAPICall(ctx context.Context, provider string, success bool)
	RecordGeocodeCall(ctx context.Context, success bool)
	RecordRecommendation(ctx context.Context, plants int, incompleteReadings int)
}
