package mocks

import (
	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type ConfigProvider struct {
	mock.Mock
}

func (_m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return _m.Called().Get(0).(ports.WeatherConfig)
}

func (_m *ConfigProvider) GetGeocodingConfig() ports.GeocodingConfig {
	return _m.Called().Get(0).(ports.GeocodingConfig)
}

func (_m *ConfigProvider) GetAuthConfig() ports.AuthConfig {
	return _m.Called().Get(0).(ports.AuthConfig)
}

func (_m *ConfigProvider) GetRecommendationConfig() ports.RecommendationConfig {
	return _m.Called().Get(0).(ports.RecommendationConfig)
}

func (_m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return _m.Called().Get(0).(ports.ServerConfig)
}

func (_m *ConfigProvider) GetSchedulerConfig() ports.SchedulerConfig {
	return _m.Called().Get(0).(ports.SchedulerConfig)
}

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
