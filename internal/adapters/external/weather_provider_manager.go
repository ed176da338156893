package external

import (
	"context"
	"fmt"
	"time"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// WeatherProviderManagerAdapter implements Chain of Responsibility pattern for weather providers
// This adapter manages multiple weather providers and implements automatic failover
type WeatherProviderManagerAdapter struct {
	providers []ports.WeatherProvider
	logger    ports.Logger
	metrics   ports.MetricsCollector
}

// ProviderManagerConfig holds configuration for creating the provider manager
type ProviderManagerConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	OpenWeatherKey    string
	OpenWeatherURL    string
	ForecastDays      int
	Timeout           time.Duration
	ProviderOrder     []string
	// LogProviders wraps every provider in a logging decorator
	LogProviders bool
	Logger       ports.Logger
	Metrics      ports.MetricsCollector
}

// NewWeatherProviderManagerAdapter creates a new weather provider manager with Chain of Responsibility
func NewWeatherProviderManagerAdapter(config ProviderManagerConfig) ports.WeatherProviderManager {
	manager := &WeatherProviderManagerAdapter{
		providers: []ports.WeatherProvider{},
		logger:    config.Logger,
		metrics:   config.Metrics,
	}

	providerMap := manager.createProviderMap(config)
	for _, providerName := range config.ProviderOrder {
		if provider, exists := providerMap[providerName]; exists {
			manager.providers = append(manager.providers, provider)
			delete(providerMap, providerName)
		}
	}

	// Configured providers missing from the order are appended in a fixed order
	for _, providerName := range []string{"openweathermap", "weatherapi"} {
		if provider, exists := providerMap[providerName]; exists {
			manager.providers = append(manager.providers, provider)
		}
	}

	return manager
}

// NewWeatherProviderManagerFromProviders builds a chain over already constructed providers
func NewWeatherProviderManagerFromProviders(providers []ports.WeatherProvider, logger ports.Logger, metrics ports.MetricsCollector) ports.WeatherProviderManager {
	return &WeatherProviderManagerAdapter{
		providers: providers,
		logger:    logger,
		metrics:   metrics,
	}
}

func (m *WeatherProviderManagerAdapter) createProviderMap(config ProviderManagerConfig) map[string]ports.WeatherProvider {
	providers := make(map[string]ports.WeatherProvider)

	if config.WeatherAPIKey != "" {
		providers["weatherapi"] = NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
			APIKey:       config.WeatherAPIKey,
			BaseURL:      config.WeatherAPIBaseURL,
			ForecastDays: config.ForecastDays,
			Timeout:      config.Timeout,
			Logger:       m.logger,
		})
		if m.logger != nil {
			m.logger.Debug("Created WeatherAPI provider", ports.F("provider", "weatherapi"))
		}
	}

	if config.OpenWeatherKey != "" {
		providers["openweathermap"] = NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			APIKey:  config.OpenWeatherKey,
			BaseURL: config.OpenWeatherURL,
			Timeout: config.Timeout,
			Logger:  m.logger,
		})
		if m.logger != nil {
			m.logger.Debug("Created OpenWeatherMap provider", ports.F("provider", "openweathermap"))
		}
	}

	if config.LogProviders && m.logger != nil {
		for name, provider := range providers {
			providers[name] = NewWeatherProviderLoggingDecorator(provider, m.logger)
		}
	}

	return providers
}

// GetCurrentWeather tries each provider until one returns current conditions
func (m *WeatherProviderManagerAdapter) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	var result *ports.WeatherData
	err := m.tryEach(ctx, "current", lat, lon, func(provider ports.WeatherProvider) error {
		weather, err := provider.GetCurrentWeather(ctx, lat, lon)
		if err != nil {
			return err
		}
		result = weather
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetForecast tries each provider until one returns a forecast
func (m *WeatherProviderManagerAdapter) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	var result *ports.ForecastData
	err := m.tryEach(ctx, "forecast", lat, lon, func(provider ports.WeatherProvider) error {
		forecast, err := provider.GetForecast(ctx, lat, lon)
		if err != nil {
			return err
		}
		result = forecast
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *WeatherProviderManagerAdapter) tryEach(ctx context.Context, operation string, lat, lon float64, call func(ports.WeatherProvider) error) error {
	if len(m.providers) == 0 {
		return errors.NewExternalAPIError("no weather providers configured", nil)
	}

	var lastErr error
	for i, provider := range m.providers {
		providerName := provider.GetProviderName()

		if m.logger != nil {
			m.logger.Debug("Trying weather provider",
				ports.F("provider", providerName),
				ports.F("operation", operation),
				ports.F("attempt", i+1),
				ports.F("lat", lat),
				ports.F("lon", lon))
		}

		err := call(provider)
		if m.metrics != nil {
			m.metrics.RecordWeatherAPICall(ctx, providerName, err == nil)
		}
		if err == nil {
			return nil
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if m.logger != nil {
			m.logger.Warn("Weather provider failed, trying next",
				ports.F("provider", providerName),
				ports.F("operation", operation),
				ports.F("error", err.Error()))
		}
	}

	if m.logger != nil {
		m.logger.Error("All weather providers failed",
			ports.F("operation", operation),
			ports.F("providers_tried", len(m.providers)),
			ports.F("last_error", lastErr.Error()))
	}

	return fmt.Errorf("all weather providers failed (tried %d providers): %w", len(m.providers), lastErr)
}

// GetProviderInfo returns information about configured providers
func (m *WeatherProviderManagerAdapter) GetProviderInfo() map[string]interface{} {
	providerNames := make([]string, len(m.providers))
	for i, provider := range m.providers {
		providerNames[i] = provider.GetProviderName()
	}

	return map[string]interface{}{
		"total_providers":  len(m.providers),
		"provider_order":   providerNames,
		"chain_enabled":    true,
		"fallback_enabled": len(m.providers) > 1,
	}
}
