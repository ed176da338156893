package location

import (
	"strings"

	"cropcast.app/internal/core/weather"
)

const shortNameParts = 3

// Place is a named location resolved from coordinates
type Place struct {
	Coordinates weather.Coordinates
	DisplayName string
	ShortName   string
}

// NewPlace builds a place and derives its short name from the display name
func NewPlace(coords weather.Coordinates, displayName string) *Place {
	return &Place{
		Coordinates: coords,
		DisplayName: strings.TrimSpace(displayName),
		ShortName:   ShortName(displayName),
	}
}

// ShortName keeps the first three comma separated parts of a display name
func ShortName(displayName string) string {
	parts := strings.Split(displayName, ",")
	kept := make([]string, 0, shortNameParts)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
		if len(kept) == shortNameParts {
			break
		}
	}
	return strings.Join(kept, ", ")
}
