package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type WeatherProvider struct {
	mock.Mock
}

func (_m *WeatherProvider) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	ret := _m.Called(ctx, lat, lon)
	r0, _ := ret.Get(0).(*ports.WeatherData)
	return r0, ret.Error(1)
}

func (_m *WeatherProvider) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	ret := _m.Called(ctx, lat, lon)
	r0, _ := ret.Get(0).(*ports.ForecastData)
	return r0, ret.Error(1)
}

func (_m *WeatherProvider) GetProviderName() string {
	return _m.Called().String(0)
}

func NewWeatherProvider(t testingT) *WeatherProvider {
	m := &WeatherProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type WeatherProviderManager struct {
	mock.Mock
}

func (_m *WeatherProviderManager) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	ret := _m.Called(ctx, lat, lon)
	r0, _ := ret.Get(0).(*ports.WeatherData)
	return r0, ret.Error(1)
}

func (_m *WeatherProviderManager) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	ret := _m.Called(ctx, lat, lon)
	r0, _ := ret.Get(0).(*ports.ForecastData)
	return r0, ret.Error(1)
}

func (_m *WeatherProviderManager) GetProviderInfo() map[string]interface{} {
	r0, _ := _m.Called().Get(0).(map[string]interface{})
	return r0
}

func NewWeatherProviderManager(t testingT) *WeatherProviderManager {
	m := &WeatherProviderManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type WeatherCache struct {
	mock.Mock
}

func (_m *WeatherCache) GetCurrent(ctx context.Context, key string) (*ports.WeatherData, error) {
	ret := _m.Called(ctx, key)
	r0, _ := ret.Get(0).(*ports.WeatherData)
	return r0, ret.Error(1)
}

func (_m *WeatherCache) SetCurrent(ctx context.Context, key string, weather *ports.WeatherData, ttl time.Duration) error {
	return _m.Called(ctx, key, weather, ttl).Error(0)
}

func (_m *WeatherCache) GetForecast(ctx context.Context, key string) (*ports.ForecastData, error) {
	ret := _m.Called(ctx, key)
	r0, _ := ret.Get(0).(*ports.ForecastData)
	return r0, ret.Error(1)
}

func (_m *WeatherCache) SetForecast(ctx context.Context, key string, forecast *ports.ForecastData, ttl time.Duration) error {
	return _m.Called(ctx, key, forecast, ttl).Error(0)
}

func NewWeatherCache(t testingT) *WeatherCache {
	m := &WeatherCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type WeatherMetrics struct {
	mock.Mock
}

func (_m *WeatherMetrics) GetProviderInfo() map[string]interface{} {
	r0, _ := _m.Called().Get(0).(map[string]interface{})
	return r0
}

func (_m *WeatherMetrics) GetCacheMetrics() (ports.CacheStats, error) {
	ret := _m.Called()
	r0, _ := ret.Get(0).(ports.CacheStats)
	return r0, ret.Error(1)
}

func NewWeatherMetrics(t testingT) *WeatherMetrics {
	m := &WeatherMetrics{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
