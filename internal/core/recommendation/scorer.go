// Package recommendation scores plant profiles against forecast readings.
package recommendation

import (
	"math"
	"sort"

	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/weather"
)

// Result is the number of forecast readings that suit a single plant
type Result struct {
	Plant         *plant.Plant
	SuitableCount int
}

// Score counts, for every plant, the readings whose temperature and humidity both
// fall inside the plant's inclusive ranges. Results keep the order of plants.
// Readings missing either measurement are never counted.
func Score(plants []*plant.Plant, readings []weather.Reading) []Result {
	results := make([]Result, 0, len(plants))
	for _, p := range plants {
		results = append(results, Result{
			Plant:         p,
			SuitableCount: countSuitable(p, readings),
		})
	}
	return results
}

func countSuitable(p *plant.Plant, readings []weather.Reading) int {
	n := 0
	for _, r := range readings {
		if !r.IsComplete() {
			continue
		}
		if p.AcceptsTemperature(*r.Temperature) && p.AcceptsHumidity(*r.Humidity) {
			n++
		}
	}
	return n
}

// SuitabilityPercentage expresses count as a rounded share of window.
// Recommend clamps readings to the window, so count never exceeds it there.
func SuitabilityPercentage(count, window int) int {
	if window <= 0 || count <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(window)))
}

// Rating buckets a suitability percentage
type Rating string

const (
	RatingExcellent  Rating = "excellent"
	RatingGood       Rating = "good"
	RatingFair       Rating = "fair"
	RatingPoor       Rating = "poor"
	RatingUnsuitable Rating = "unsuitable"
)

// RatingFor maps a percentage onto its rating band
func RatingFor(percent int) Rating {
	switch {
	case percent >= 80:
		return RatingExcellent
	case percent >= 60:
		return RatingGood
	case percent >= 40:
		return RatingFair
	case percent >= 20:
		return RatingPoor
	default:
		return RatingUnsuitable
	}
}

// Rank returns a copy of results sorted by suitable count, highest first.
// Ties keep their scoring order.
func Rank(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SuitableCount > ranked[j].SuitableCount
	})
	return ranked
}
