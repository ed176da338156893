package weather

import (
	"fmt"
	"time"

	"cropcast.app/pkg/validation"
)

// Coordinates is a WGS84 point in decimal degrees
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate checks that both axes are finite and in range
func (c Coordinates) Validate() error {
	if !validation.IsValidLatitude(c.Lat) {
		return fmt.Errorf("latitude must be a number between -90 and 90")
	}
	if !validation.IsValidLongitude(c.Lon) {
		return fmt.Errorf("longitude must be a number between -180 and 180")
	}
	return nil
}

// Key renders the coordinates rounded to the given number of decimals
func (c Coordinates) Key(decimals int) string {
	return fmt.Sprintf("%.*f,%.*f", decimals, c.Lat, decimals, c.Lon)
}

// Reading is one forecast sample. Temperature is in °C and humidity in %.
type Reading struct {
	Time        time.Time
	Temperature *float64
	Humidity    *float64
	Description string
}

// IsComplete reports whether both measurements are present
func (r Reading) IsComplete() bool {
	return r.Temperature != nil && r.Humidity != nil
}

// Forecast is an ordered list of readings for a coordinate
type Forecast struct {
	Coordinates Coordinates
	Readings    []Reading
	Provider    string
	FetchedAt   time.Time
}

// IncompleteReadings counts readings missing temperature or humidity
func (f *Forecast) IncompleteReadings() int {
	n := 0
	for _, r := range f.Readings {
		if !r.IsComplete() {
			n++
		}
	}
	return n
}

// Current represents the present conditions at a coordinate
type Current struct {
	Coordinates Coordinates
	Temperature float64
	Humidity    float64
	Description string
	Location    string
	Timestamp   time.Time
}

// IsValid validates weather data
func (w *Current) IsValid() error {
	if w.Temperature < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if w.Humidity < 0 || w.Humidity > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	return nil
}

// HumidityDescription provides a human-readable description of humidity level
func (w *Current) HumidityDescription() string {
	switch {
	case w.Humidity < 20:
		return "Very dry"
	case w.Humidity < 30:
		return "Dry"
	case w.Humidity < 60:
		return "Comfortable"
	case w.Humidity < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}
