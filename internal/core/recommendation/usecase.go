package recommendation

import (
	"context"
	"fmt"

	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/weather"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// PlantCatalog lists the plants a viewer may see
type PlantCatalog interface {
	ListVisible(ctx context.Context, params plant.ListParams) ([]*plant.Plant, error)
}

// ForecastSource provides forecasts for a coordinate
type ForecastSource interface {
	GetForecast(ctx context.Context, coords weather.Coordinates) (*weather.Forecast, error)
}

type UseCase struct {
	catalog   PlantCatalog
	forecasts ForecastSource
	config    ports.ConfigProvider
	logger    ports.Logger
	metrics   ports.MetricsCollector
}

type UseCaseDependencies struct {
	Catalog   PlantCatalog
	Forecasts ForecastSource
	Config    ports.ConfigProvider
	Logger    ports.Logger
	Metrics   ports.MetricsCollector
}

// Request asks for planting recommendations at a coordinate. ViewerID is nil for anonymous callers.
type Request struct {
	Coordinates weather.Coordinates
	ViewerID    *uint
}

// Report holds scored plants in catalog order along with data quality counters
type Report struct {
	Results            []Result
	ReadingsEvaluated  int
	IncompleteReadings int
	ForecastWindow     int
	Provider           string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Catalog == nil {
		return nil, errors.NewValidationError("plant catalog is required")
	}
	if deps.Forecasts == nil {
		return nil, errors.NewValidationError("forecast source is required")
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
		catalog:   deps.Catalog,
		forecasts: deps.Forecasts,
		config:    deps.Config,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
	}, nil
}

func (uc *UseCase) Recommend(ctx context.Context, req Request) (*Report, error) {
	if err := req.Coordinates.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	window := uc.config.GetRecommendationConfig().ForecastWindowSlots

	plants, err := uc.catalog.ListVisible(ctx, plant.ListParams{ViewerID: req.ViewerID})
	if err != nil {
		return nil, fmt.Errorf("load plant catalog: %w", err)
	}

	forecast, err := uc.forecasts.GetForecast(ctx, req.Coordinates)
	if err != nil {
		if errors.IsValidationError(err) || errors.IsExternalAPIError(err) {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("forecast unavailable", err)
	}
	forecast = clampToWindow(forecast, window)

	incomplete := forecast.IncompleteReadings()
	if incomplete > 0 {
		uc.logger.Warn("Forecast contains incomplete readings",
			ports.F("incomplete", incomplete),
			ports.F("total", len(forecast.Readings)),
			ports.F("provider", forecast.Provider))
	}

	if len(plants) == 0 {
		uc.logger.Warn("No plants available for recommendation")
	}

	results := Score(plants, forecast.Readings)
	uc.metrics.RecordRecommendation(ctx, len(plants), incomplete)

	uc.logger.Debug("Recommendation computed",
		ports.F("plants", len(plants)),
		ports.F("readings", len(forecast.Readings)),
		ports.F("coordinates", req.Coordinates.Key(4)))

	return &Report{
		Results:            results,
		ReadingsEvaluated:  len(forecast.Readings),
		IncompleteReadings: incomplete,
		ForecastWindow:     window,
		Provider:           forecast.Provider,
	}, nil
}

// clampToWindow keeps at most window readings so no count can exceed the window
func clampToWindow(forecast *weather.Forecast, window int) *weather.Forecast {
	if window <= 0 || len(forecast.Readings) <= window {
		return forecast
	}
	clamped := *forecast
	clamped.Readings = forecast.Readings[:window]
	return &clamped
}
