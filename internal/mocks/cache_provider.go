package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type CacheProvider struct {
	mock.Mock
}

func (_m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	ret := _m.Called(ctx, key)
	r0, _ := ret.Get(0).([]byte)
	return r0, ret.Error(1)
}

func (_m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return _m.Called(ctx, key, value, ttl).Error(0)
}

func (_m *CacheProvider) Delete(ctx context.Context, key string) error {
	return _m.Called(ctx, key).Error(0)
}

func (_m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *CacheProvider) Clear(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func NewCacheProvider(t testingT) *CacheProvider {
	m := &CacheProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MetricsCollector struct {
	mock.Mock
}

func (_m *MetricsCollector) RecordCacheHit(ctx context.Context) {
	_m.Called(ctx)
}

func (_m *MetricsCollector) RecordCacheMiss(ctx context.Context) {
	_m.Called(ctx)
}

func (_m *MetricsCollector) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	_m.Called(ctx, provider, success)
}

func (_m *MetricsCollector) RecordGeocodeCall(ctx context.Context, success bool) {
	_m.Called(ctx, success)
}

func (_m *MetricsCollector) RecordRecommendation(ctx context.Context, plants int, incompleteReadings int) {
	_m.Called(ctx, plants, incompleteReadings)
}

func NewMetricsCollector(t testingT) *MetricsCollector {
	m := &MetricsCollector{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type HealthChecker struct {
	mock.Mock
}

func (_m *HealthChecker) Check(ctx context.Context) ports.HealthStatus {
	r0, _ := _m.Called(ctx).Get(0).(ports.HealthStatus)
	return r0
}

func NewHealthChecker(t testingT) *HealthChecker {
	m := &HealthChecker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
