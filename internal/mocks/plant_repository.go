package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cropcast.app/internal/ports"
)

type PlantRepository struct {
	mock.Mock
}

func (_m *PlantRepository) Save(ctx context.Context, plant *ports.PlantData) error {
	return _m.Called(ctx, plant).Error(0)
}

func (_m *PlantRepository) FindByID(ctx context.Context, id uint) (*ports.PlantData, error) {
	ret := _m.Called(ctx, id)
	r0, _ := ret.Get(0).(*ports.PlantData)
	return r0, ret.Error(1)
}

func (_m *PlantRepository) FindPublicByName(ctx context.Context, name string) (*ports.PlantData, error) {
	ret := _m.Called(ctx, name)
	r0, _ := ret.Get(0).(*ports.PlantData)
	return r0, ret.Error(1)
}

func (_m *PlantRepository) FindVisible(ctx context.Context, filter ports.PlantFilter) ([]*ports.PlantData, error) {
	ret := _m.Called(ctx, filter)
	r0, _ := ret.Get(0).([]*ports.PlantData)
	return r0, ret.Error(1)
}

func (_m *PlantRepository) Update(ctx context.Context, plant *ports.PlantData) error {
	return _m.Called(ctx, plant).Error(0)
}

func (_m *PlantRepository) Delete(ctx context.Context, plant *ports.PlantData) error {
	return _m.Called(ctx, plant).Error(0)
}

func (_m *PlantRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	r0, _ := ret.Get(0).(int64)
	return r0, ret.Error(1)
}

func NewPlantRepository(t testingT) *PlantRepository {
	m := &PlantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
