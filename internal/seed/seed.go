// Package seed loads the public crop catalog into the plant repository.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry is one crop profile in a catalog file
type Entry struct {
	Name           string  `yaml:"name"`
	Type           string  `yaml:"type"`
	GrowingPeriod  int     `yaml:"growingPeriod"`
	TempMin        float64 `yaml:"tempMin"`
	TempMax        float64 `yaml:"tempMax"`
	HumidityMin    float64 `yaml:"humidityMin"`
	HumidityMax    float64 `yaml:"humidityMax"`
	RainResistance string  `yaml:"rainResistance"`
	IdealSeason    string  `yaml:"idealSeason"`
	Notes          string  `yaml:"notes"`
}

type catalogFile struct {
	Plants []Entry `yaml:"plants"`
}

func (e Entry) input() plant.Input {
	return plant.Input{
		Name:           e.Name,
		Type:           e.Type,
		GrowingPeriod:  e.GrowingPeriod,
		TempMin:        e.TempMin,
		TempMax:        e.TempMax,
		HumidityMin:    e.HumidityMin,
		HumidityMax:    e.HumidityMax,
		RainResistance: e.RainResistance,
		IdealSeason:    e.IdealSeason,
		Notes:          e.Notes,
		IsPublic:       true,
	}
}

// DefaultCatalog returns the embedded crop catalog
func DefaultCatalog() ([]Entry, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalogFile reads a catalog from a YAML file on disk
func LoadCatalogFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to read catalog file", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and validates every entry
func ParseCatalog(data []byte) ([]Entry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewValidationError("failed to parse catalog: " + err.Error())
	}
	if len(file.Plants) == 0 {
		return nil, errors.NewValidationError("catalog contains no plants")
	}

	seen := make(map[string]bool, len(file.Plants))
	for i, entry := range file.Plants {
		p := plant.NewPlant(nil, entry.input())
		if err := p.Validate(); err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("catalog entry %d (%s): %s", i, entry.Name, err))
		}
		if seen[p.Name] {
			return nil, errors.NewValidationError(fmt.Sprintf("catalog entry %d: duplicate plant %q", i, p.Name))
		}
		seen[p.Name] = true
	}
	return file.Plants, nil
}

// Result reports what a seeding run changed
type Result struct {
	Created int
	Skipped int
}

type Seeder struct {
	plantRepo ports.PlantRepository
	logger    ports.Logger
}

type SeederDependencies struct {
	PlantRepo ports.PlantRepository
	Logger    ports.Logger
}

func NewSeeder(deps SeederDependencies) (*Seeder, error) {
	if deps.PlantRepo == nil {
		return nil, errors.NewValidationError("plant repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	return &Seeder{plantRepo: deps.PlantRepo, logger: deps.Logger}, nil
}

// Seed inserts every entry that has no ownerless public plant of the same name yet.
// Running it again on the same catalog creates nothing.
func (s *Seeder) Seed(ctx context.Context, entries []Entry) (Result, error) {
	var result Result
	for _, entry := range entries {
		p := plant.NewPlant(nil, entry.input())

		_, err := s.plantRepo.FindPublicByName(ctx, p.Name)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.IsNotFoundError(err) {
			return result, fmt.Errorf("look up plant %q: %w", p.Name, err)
		}

		if err := s.plantRepo.Save(ctx, p.ToData()); err != nil {
			return result, fmt.Errorf("save plant %q: %w", p.Name, err)
		}
		result.Created++
		s.logger.Debug("Seeded plant", ports.F("name", p.Name))
	}

	s.logger.Info("Plant catalog seeded",
		ports.F("created", result.Created),
		ports.F("skipped", result.Skipped))
	return result, nil
}
