package location

import (
	"context"

	"cropcast.app/internal/core/weather"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

const cacheKeyPrecision = 5

type UseCase struct {
	geocoder ports.Geocoder
	cache    ports.PlaceCache
	config   ports.ConfigProvider
	logger   ports.Logger
}

type UseCaseDependencies struct {
	Geocoder ports.Geocoder
	Cache    ports.PlaceCache
	Config   ports.ConfigProvider
	Logger   ports.Logger
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Geocoder == nil {
		return nil, errors.NewValidationError("geocoder is required")
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

	return &UseCase{
		geocoder: deps.Geocoder,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
	}, nil
}

// Reverse resolves coordinates into a place name
func (uc *UseCase) Reverse(ctx context.Context, coords weather.Coordinates) (*Place, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	cfg := uc.config.GetGeocodingConfig()
	if !cfg.Enabled {
		return nil, errors.NewNotFoundError("reverse geocoding is disabled")
	}

	cacheKey := "geocode:" + coords.Key(cacheKeyPrecision)
	if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		uc.logger.Debug("Place found in cache", ports.F("key", cacheKey))
		return NewPlace(coords, cached.DisplayName), nil
	}

	data, err := uc.geocoder.ReverseGeocode(ctx, coords.Lat, coords.Lon)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Error("Reverse geocoding failed",
			ports.F("provider", uc.geocoder.GetProviderName()),
			ports.F("coordinates", cacheKey),
			ports.F("error", err))
		return nil, errors.NewExternalAPIError("location lookup unavailable", err)
	}
	if data == nil || data.DisplayName == "" {
		return nil, errors.NewNotFoundError("no place found for coordinates")
	}

	if cacheErr := uc.cache.Set(ctx, cacheKey, data, cfg.CacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache place",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}

	return NewPlace(coords, data.DisplayName), nil
}
