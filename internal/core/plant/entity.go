package plant

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	minTemperatureCelsius = -90
	maxTemperatureCelsius = 70
	maxNameLength         = 100
	maxNotesLength        = 2000
)

// Plant is a crop profile with the climate envelope it tolerates
type Plant struct {
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

// Input carries the user editable fields of a plant
type Input struct {
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
	IsPublic       bool
}

// NewPlant builds a plant owned by ownerID from input
func NewPlant(ownerID *uint, input Input) *Plant {
	now := time.Now()
	p := &Plant{
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(input)
	return p
}

// Apply overwrites the editable fields with trimmed input values
func (p *Plant) Apply(input Input) {
	p.Name = strings.TrimSpace(input.Name)
	p.Type = strings.TrimSpace(input.Type)
	p.GrowingPeriod = input.GrowingPeriod
	p.TempMin = input.TempMin
	p.TempMax = input.TempMax
	p.HumidityMin = input.HumidityMin
	p.HumidityMax = input.HumidityMax
	p.RainResistance = strings.TrimSpace(input.RainResistance)
	p.IdealSeason = strings.TrimSpace(input.IdealSeason)
	p.Notes = strings.TrimSpace(input.Notes)
	p.IsPublic = input.IsPublic
	p.UpdatedAt = time.Now()
}

// Validate checks that the profile is usable for scoring
func (p *Plant) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(p.Name) > maxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}
	if p.Type == "" {
		return fmt.Errorf("type cannot be empty")
	}
	if p.GrowingPeriod <= 0 {
		return fmt.Errorf("growing period must be greater than 0 days")
	}
	if len(p.Notes) > maxNotesLength {
		return fmt.Errorf("notes cannot exceed %d characters", maxNotesLength)
	}
	if err := validateRange("temperature", p.TempMin, p.TempMax, minTemperatureCelsius, maxTemperatureCelsius); err != nil {
		return err
	}
	return validateRange("humidity", p.HumidityMin, p.HumidityMax, 0, 100)
}

func validateRange(name string, lo, hi, floor, ceiling float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%s range must be finite", name)
	}
	if lo < floor || hi > ceiling {
		return fmt.Errorf("%s range must be within [%g, %g]", name, floor, ceiling)
	}
	if lo > hi {
		return fmt.Errorf("%s minimum cannot exceed maximum", name)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the plant
func (p *Plant) IsOwnedBy(userID uint) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}

// IsVisibleTo reports whether the viewer may read the plant. A nil viewer is anonymous.
func (p *Plant) IsVisibleTo(viewerID *uint) bool {
	if p.IsPublic {
		return true
	}
	return viewerID != nil && p.IsOwnedBy(*viewerID)
}

// AcceptsTemperature reports whether t lies within the inclusive temperature range
func (p *Plant) AcceptsTemperature(t float64) bool {
	return t >= p.TempMin && t <= p.TempMax
}

// AcceptsHumidity reports whether h lies within the inclusive humidity range
func (p *Plant) AcceptsHumidity(h float64) bool {
	return h >= p.HumidityMin && h <= p.HumidityMax
}
