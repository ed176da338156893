package ports

import (
	"context"
	"time"
)

// PlantData represents plant profile data for persistence
type PlantData struct {
	ID             uint
	Name           string
	Type           string
	GrowingPeriod  int
	TempMin        float64
	TempMax        float64
	HumidityMin    float64
	HumidityMax    float64
	RainResistance string
	IdealSeason    string
	Notes          string
	OwnerID        *uint
	IsPublic       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PlantFilter narrows the catalog to what a viewer may see
type PlantFilter struct {
	ViewerID *uint
	Search   string
}

// PlantRepository defines the contract for plant catalog persistence
type PlantRepository interface {
	Save(ctx context.Context, plant *PlantData) error
	FindByID(ctx context.Context, id uint) (*PlantData, error)
	FindPublicByName(ctx context.Context, name string) (*PlantData, error)
	FindVisible(ctx context.Context, filter PlantFilter) ([]*PlantData, error)
	Update(ctx context.Context, plant *PlantData) error
	Delete(ctx context.Context, plant *PlantData) error
	Count(ctx context.Context) (int64, error)
}
