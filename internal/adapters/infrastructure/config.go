package infrastructure

import (
	"time"

	"cropcast.app/internal/config"
	"cropcast.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:           c.config.Server.Port,
		AllowedOrigins: c.config.Server.AllowedOrigins,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache:      c.config.Weather.EnableCache,
		CacheTTL:         time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		ForecastCacheTTL: time.Duration(c.config.Weather.ForecastCacheTTLMinutes) * time.Minute,
	}
}

// GetGeocodingConfig returns reverse geocoding configuration
func (c *ConfigProviderAdapter) GetGeocodingConfig() ports.GeocodingConfig {
	return ports.GeocodingConfig{
		Enabled:  c.config.Geocoding.Enabled,
		CacheTTL: time.Duration(c.config.Geocoding.CacheTTLMinutes) * time.Minute,
	}
}

// GetAuthConfig returns session configuration
func (c *ConfigProviderAdapter) GetAuthConfig() ports.AuthConfig {
	return ports.AuthConfig{
		SessionTTL: c.config.Auth.SessionTTL,
	}
}

// GetRecommendationConfig returns recommendation configuration
func (c *ConfigProviderAdapter) GetRecommendationConfig() ports.RecommendationConfig {
	return ports.RecommendationConfig{
		ForecastWindowSlots: c.config.Recommendation.ForecastWindowSlots,
	}
}

// GetSchedulerConfig returns scheduler configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	return ports.SchedulerConfig{
		SessionCleanupSchedule: c.config.Scheduler.SessionCleanupSchedule,
	}
}
