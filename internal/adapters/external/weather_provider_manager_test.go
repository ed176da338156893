package external

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/mocks"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

func namedProvider(t *testing.T, name string) *mocks.WeatherProvider {
	provider := mocks.NewWeatherProvider(t)
	provider.On("GetProviderName").Return(name).Maybe()
	return provider
}

func TestWeatherProviderManager_GetForecast_FallsBack(t *testing.T) {
	primary := namedProvider(t, "openweathermap")
	secondary := namedProvider(t, "weatherapi")
	metrics := mocks.NewMetricsCollector(t)

	forecast := &ports.ForecastData{Provider: "weatherapi", Readings: []ports.ReadingData{{}}}
	primary.On("GetForecast", mock.Anything, 1.5, 2.5).Return(nil, fmt.Errorf("timeout"))
	secondary.On("GetForecast", mock.Anything, 1.5, 2.5).Return(forecast, nil)
	metrics.On("RecordWeatherAPICall", mock.Anything, "openweathermap", false).Once()
	metrics.On("RecordWeatherAPICall", mock.Anything, "weatherapi", true).Once()

	manager := NewWeatherProviderManagerFromProviders(
		[]ports.WeatherProvider{primary, secondary}, mocks.NewLogger(t).AllowAll(), metrics)

	result, err := manager.GetForecast(context.Background(), 1.5, 2.5)

	require.NoError(t, err)
	assert.Same(t, forecast, result)
}

func TestWeatherProviderManager_GetCurrentWeather_FirstProviderWins(t *testing.T) {
	primary := namedProvider(t, "openweathermap")
	secondary := namedProvider(t, "weatherapi")

	weather := &ports.WeatherData{Temperature: 21}
	primary.On("GetCurrentWeather", mock.Anything, 0.0, 0.0).Return(weather, nil)

	manager := NewWeatherProviderManagerFromProviders(
		[]ports.WeatherProvider{primary, secondary}, mocks.NewLogger(t).AllowAll(), nil)

	result, err := manager.GetCurrentWeather(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 21.0, result.Temperature)
	secondary.AssertNotCalled(t, "GetCurrentWeather", mock.Anything, mock.Anything, mock.Anything)
}

func TestWeatherProviderManager_AllProvidersFail(t *testing.T) {
	primary := namedProvider(t, "openweathermap")
	secondary := namedProvider(t, "weatherapi")

	primary.On("GetForecast", mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("boom"))
	secondary.On("GetForecast", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.NewExternalAPIError("WeatherAPI returned status 500", nil))

	logger := mocks.NewLogger(t).AllowAll()
	manager := NewWeatherProviderManagerFromProviders([]ports.WeatherProvider{primary, secondary}, logger, nil)

	_, err := manager.GetForecast(context.Background(), 0, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tried 2 providers")
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestWeatherProviderManager_NoProviders(t *testing.T) {
	manager := NewWeatherProviderManagerAdapter(ProviderManagerConfig{})

	_, err := manager.GetForecast(context.Background(), 0, 0)
	assert.True(t, errors.IsExternalAPIError(err))

	info := manager.GetProviderInfo()
	assert.Equal(t, 0, info["total_providers"])
	assert.Equal(t, false, info["fallback_enabled"])
}

func TestWeatherProviderManager_ProviderOrder(t *testing.T) {
	tests := []struct {
		name     string
		config   ProviderManagerConfig
		expected []string
	}{
		{
			name: "ConfiguredOrder",
			config: ProviderManagerConfig{
				WeatherAPIKey:  "wa",
				OpenWeatherKey: "owm",
				ProviderOrder:  []string{"weatherapi", "openweathermap"},
			},
			expected: []string{"weatherapi", "openweathermap"},
		},
		{
			name: "UnlistedProviderAppended",
			config: ProviderManagerConfig{
				WeatherAPIKey:  "wa",
				OpenWeatherKey: "owm",
				ProviderOrder:  []string{"weatherapi"},
			},
			expected: []string{"weatherapi", "openweathermap"},
		},
		{
			name: "MissingKeySkipped",
			config: ProviderManagerConfig{
				OpenWeatherKey: "owm",
				ProviderOrder:  []string{"weatherapi", "openweathermap"},
			},
			expected: []string{"openweathermap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Logger = mocks.NewLogger(t).AllowAll()
			tt.config.LogProviders = true

			info := NewWeatherProviderManagerAdapter(tt.config).GetProviderInfo()

			assert.Equal(t, tt.expected, info["provider_order"])
			assert.Equal(t, len(tt.expected), info["total_providers"])
			assert.Equal(t, len(tt.expected) > 1, info["fallback_enabled"])
		})
	}
}

func TestWeatherProviderManager_StopsOnCancelledContext(t *testing.T) {
	primary := namedProvider(t, "openweathermap")
	secondary := namedProvider(t, "weatherapi")

	ctx, cancel := context.WithCancel(context.Background())
	primary.On("GetForecast", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled)

	manager := NewWeatherProviderManagerFromProviders(
		[]ports.WeatherProvider{primary, secondary}, mocks.NewLogger(t).AllowAll(), nil)

	_, err := manager.GetForecast(ctx, 0, 0)

	assert.ErrorIs(t, err, context.Canceled)
	secondary.AssertNotCalled(t, "GetForecast", mock.Anything, mock.Anything, mock.Anything)
}
