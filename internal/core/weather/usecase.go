package weather

import (
	"context"
	"fmt"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

const cacheKeyPrecision = 4

type UseCase struct {
	weatherProvider ports.WeatherProviderManager
	cache           ports.WeatherCache
	config          ports.ConfigProvider
	logger          ports.Logger
	metrics         ports.WeatherMetrics
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProviderManager
	Cache           ports.WeatherCache
	Config          ports.ConfigProvider
	Logger          ports.Logger
	Metrics         ports.WeatherMetrics
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		cache:           deps.Cache,
		config:          deps.Config,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

func (uc *UseCase) GetCurrent(ctx context.Context, coords Coordinates) (*Current, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	cfg := uc.config.GetWeatherConfig()
	cacheKey := "weather:current:" + coords.Key(cacheKeyPrecision)

	if cfg.EnableCache {
		if cached, err := uc.cache.GetCurrent(ctx, cacheKey); err == nil && cached != nil {
			uc.logger.Debug("Current weather found in cache", ports.F("key", cacheKey))
			return currentFromData(cached), nil
		}
	}

	data, err := uc.weatherProvider.GetCurrentWeather(ctx, coords.Lat, coords.Lon)
	if err != nil {
		uc.logger.Error("Failed to get current weather",
			ports.F("coordinates", coords.Key(cacheKeyPrecision)),
			ports.F("error", err))
		return nil, errors.NewExternalAPIError("weather unavailable", err)
	}

	current := currentFromData(data)
	if err := current.IsValid(); err != nil {
		return nil, errors.NewExternalAPIError("invalid weather data from provider", err)
	}

	if cfg.EnableCache {
		if cacheErr := uc.cache.SetCurrent(ctx, cacheKey, data, cfg.CacheTTL); cacheErr != nil {
			uc.logger.Warn("Failed to cache current weather",
				ports.F("key", cacheKey),
				ports.F("error", cacheErr))
		}
	}

	return current, nil
}

// GetForecast returns the provider forecast for coords. Provider failures surface
// as an ExternalAPIError so callers never act on a partial forecast.
func (uc *UseCase) GetForecast(ctx context.Context, coords Coordinates) (*Forecast, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	cfg := uc.config.GetWeatherConfig()
	cacheKey := "weather:forecast:" + coords.Key(cacheKeyPrecision)

	if cfg.EnableCache {
		if cached, err := uc.cache.GetForecast(ctx, cacheKey); err == nil && cached != nil {
			uc.logger.Debug("Forecast found in cache",
				ports.F("key", cacheKey),
				ports.F("readings", len(cached.Readings)))
			return forecastFromData(cached, coords), nil
		}
	}

	data, err := uc.weatherProvider.GetForecast(ctx, coords.Lat, coords.Lon)
	if err != nil {
		uc.logger.Error("Failed to get forecast",
			ports.F("coordinates", coords.Key(cacheKeyPrecision)),
			ports.F("error", err))
		return nil, errors.NewExternalAPIError("forecast unavailable", err)
	}
	if data == nil {
		return nil, errors.NewExternalAPIError("forecast unavailable", fmt.Errorf("provider returned no forecast"))
	}

	if cfg.EnableCache {
		if cacheErr := uc.cache.SetForecast(ctx, cacheKey, data, cfg.ForecastCacheTTL); cacheErr != nil {
			uc.logger.Warn("Failed to cache forecast",
				ports.F("key", cacheKey),
				ports.F("error", cacheErr))
		}
	}

	uc.logger.Debug("Forecast retrieved",
		ports.F("provider", data.Provider),
		ports.F("readings", len(data.Readings)))
	return forecastFromData(data, coords), nil
}

func (uc *UseCase) GetProviderInfo(ctx context.Context) map[string]interface{} {
	return uc.metrics.GetProviderInfo()
}

func (uc *UseCase) GetCacheMetrics(ctx context.Context) (ports.CacheStats, error) {
	metrics, err := uc.metrics.GetCacheMetrics()
	if err != nil {
		return ports.CacheStats{}, fmt.Errorf("get cache metrics: %w", err)
	}
	return metrics, nil
}

func currentFromData(d *ports.WeatherData) *Current {
	return &Current{
		Coordinates: Coordinates{Lat: d.Latitude, Lon: d.Longitude},
		Temperature: d.Temperature,
		Humidity:    d.Humidity,
		Description: d.Description,
		Location:    d.Location,
		Timestamp:   d.Timestamp,
	}
}

func forecastFromData(d *ports.ForecastData, coords Coordinates) *Forecast {
	readings := make([]Reading, len(d.Readings))
	for i, r := range d.Readings {
		readings[i] = Reading{
			Time:        r.Time,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Description: r.Description,
		}
	}
	return &Forecast{
		Coordinates: coords,
		Readings:    readings,
		Provider:    d.Provider,
		FetchedAt:   d.FetchedAt,
	}
}
