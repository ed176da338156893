package external

import (
	"context"
	"time"

	"cropcast.app/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) ports.WeatherProvider {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetCurrentWeather wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("operation", "current"),
		ports.F("lat", lat),
		ports.F("lon", lon),
		ports.F("event", "request"))

	startTime := time.Now()
	weatherData, err := d.provider.GetCurrentWeather(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("operation", "current"),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("operation", "current"),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", weatherData.Temperature),
		ports.F("humidity", weatherData.Humidity),
		ports.F("description", weatherData.Description))

	return weatherData, nil
}

// GetForecast wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("operation", "forecast"),
		ports.F("lat", lat),
		ports.F("lon", lon),
		ports.F("event", "request"))

	startTime := time.Now()
	forecast, err := d.provider.GetForecast(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("operation", "forecast"),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("operation", "forecast"),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("readings", len(forecast.Readings)))

	return forecast, nil
}

// GetProviderName returns the wrapped provider's name so metrics and reports stay stable
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// WeatherProviderManagerLoggingDecorator decorates the provider manager with logging
type WeatherProviderManagerLoggingDecorator struct {
	manager ports.WeatherProviderManager
	logger  ports.Logger
}

// NewWeatherProviderManagerLoggingDecorator creates a new logging decorator for weather provider manager
func NewWeatherProviderManagerLoggingDecorator(manager ports.WeatherProviderManager, logger ports.Logger) ports.WeatherProviderManager {
	return &WeatherProviderManagerLoggingDecorator{
		manager: manager,
		logger:  logger,
	}
}

// GetCurrentWeather wraps the manager call with structured logging
func (d *WeatherProviderManagerLoggingDecorator) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	d.logger.Info("Weather provider chain started",
		ports.F("operation", "current"),
		ports.F("event", "chain_start"))

	startTime := time.Now()
	weatherData, err := d.manager.GetCurrentWeather(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather provider chain failed",
			ports.F("operation", "current"),
			ports.F("event", "chain_error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather provider chain completed",
		ports.F("operation", "current"),
		ports.F("event", "chain_success"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", weatherData.Temperature))

	return weatherData, nil
}

// GetForecast wraps the manager call with structured logging
func (d *WeatherProviderManagerLoggingDecorator) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	d.logger.Info("Weather provider chain started",
		ports.F("operation", "forecast"),
		ports.F("event", "chain_start"))

	startTime := time.Now()
	forecast, err := d.manager.GetForecast(ctx, lat, lon)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather provider chain failed",
			ports.F("operation", "forecast"),
			ports.F("event", "chain_error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather provider chain completed",
		ports.F("operation", "forecast"),
		ports.F("event", "chain_success"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("provider", forecast.Provider),
		ports.F("readings", len(forecast.Readings)))

	return forecast, nil
}

// GetProviderInfo delegates to the wrapped manager
func (d *WeatherProviderManagerLoggingDecorator) GetProviderInfo() map[string]interface{} {
	info := d.manager.GetProviderInfo()
	info["logging_enabled"] = true
	return info
}
