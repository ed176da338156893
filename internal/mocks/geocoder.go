package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type Geocoder struct {
	mock.Mock
}

func (_m *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*ports.PlaceData, error) {
	ret := _m.Called(ctx, lat, lon)
	r0, _ := ret.Get(0).(*ports.PlaceData)
	return r0, ret.Error(1)
}

func (_m *Geocoder) GetProviderName() string {
	return _m.Called().String(0)
}

func NewGeocoder(t testingT) *Geocoder {
	m := &Geocoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type PlaceCache struct {
	mock.Mock
}

func (_m *PlaceCache) Get(ctx context.Context, key string) (*ports.PlaceData, error) {
	ret := _m.Called(ctx, key)
	r0, _ := ret.Get(0).(*ports.PlaceData)
	return r0, ret.Error(1)
}

func (_m *PlaceCache) Set(ctx context.Context, key string, place *ports.PlaceData, ttl time.Duration) error {
	return _m.Called(ctx, key, place, ttl).Error(0)
}

func NewPlaceCache(t testingT) *PlaceCache {
	m := &PlaceCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
