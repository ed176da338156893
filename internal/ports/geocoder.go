package ports

import (
	"context"
	"time"
)

// PlaceData represents a reverse geocoding result
type PlaceData struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Geocoder resolves coordinates to a human readable place
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*PlaceData, error)
	GetProviderName() string
}

// PlaceCache defines the contract for caching geocoding results
type PlaceCache interface {
	Get(ctx context.Context, key string) (*PlaceData, error)
	Set(ctx context.Context, key string, place *PlaceData, ttl time.Duration) error
}
