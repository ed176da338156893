package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/weather"
)

func fp(v float64) *float64 { return &v }

func reading(temp, humidity float64) weather.Reading {
	return weather.Reading{Temperature: fp(temp), Humidity: fp(humidity)}
}

func testPlant(id uint, name string, tMin, tMax, hMin, hMax float64) *plant.Plant {
	return &plant.Plant{
		ID:            id,
		Name:          name,
		Type:          "Sayuran",
		GrowingPeriod: 60,
		TempMin:       tMin,
		TempMax:       tMax,
		HumidityMin:   hMin,
		HumidityMax:   hMax,
		IsPublic:      true,
	}
}

func TestScore_CountsReadingsInsideBothRanges(t *testing.T) {
	p := testPlant(1, "Jagung", 20, 30, 60, 85)
	readings := []weather.Reading{
		reading(25, 70),
		reading(31, 70),
		reading(20, 60),
	}

	results := Score([]*plant.Plant{p}, readings)

	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].SuitableCount)
	assert.Same(t, p, results[0].Plant)
}

func TestScore_RequiresBothConditions(t *testing.T) {
	p := testPlant(1, "Tomat", 20, 30, 65, 85)
	readings := []weather.Reading{
		reading(25, 50),
		reading(35, 70),
		reading(10, 10),
	}

	assert.Equal(t, 0, Score([]*plant.Plant{p}, readings)[0].SuitableCount)
}

func TestScore_BoundsAreInclusive(t *testing.T) {
	p := testPlant(1, "Bawang Merah", 18, 30, 65, 75)
	readings := []weather.Reading{
		reading(18, 65),
		reading(30, 75),
		reading(18, 75),
		reading(30, 65),
		reading(17.99, 70),
		reading(25, 75.01),
	}

	assert.Equal(t, 4, Score([]*plant.Plant{p}, readings)[0].SuitableCount)
}

func TestScore_DegenerateRangeMatchesExactValue(t *testing.T) {
	p := testPlant(1, "Uji", 25, 25, 70, 70)
	readings := []weather.Reading{reading(25, 70), reading(25.1, 70)}

	assert.Equal(t, 1, Score([]*plant.Plant{p}, readings)[0].SuitableCount)
}

func TestScore_PreservesInputOrder(t *testing.T) {
	plantA := testPlant(1, "A", 20, 30, 60, 90)
	plantB := testPlant(2, "B", 0, 5, 0, 10)
	readings := []weather.Reading{reading(25, 70), reading(26, 75)}

	results := Score([]*plant.Plant{plantB, plantA}, readings)

	require.Len(t, results, 2)
	assert.Equal(t, "B", results[0].Plant.Name)
	assert.Equal(t, 0, results[0].SuitableCount)
	assert.Equal(t, "A", results[1].Plant.Name)
	assert.Equal(t, 2, results[1].SuitableCount)
}

func TestScore_EmptyInputs(t *testing.T) {
	assert.Empty(t, Score(nil, []weather.Reading{reading(25, 70)}))
	assert.Empty(t, Score([]*plant.Plant{}, nil))

	plants := []*plant.Plant{testPlant(1, "A", 20, 30, 60, 90), testPlant(2, "B", 20, 30, 60, 90)}
	results := Score(plants, nil)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 0, r.SuitableCount)
	}
}

func TestScore_SkipsIncompleteReadings(t *testing.T) {
	p := testPlant(1, "Padi", 22, 30, 70, 90)
	readings := []weather.Reading{
		reading(25, 80),
		{Temperature: fp(25)},
		{Humidity: fp(80)},
		{},
		reading(26, 85),
	}

	assert.Equal(t, 2, Score([]*plant.Plant{p}, readings)[0].SuitableCount)
}

func TestScore_IsIdempotent(t *testing.T) {
	plants := []*plant.Plant{
		testPlant(1, "Padi", 22, 30, 70, 90),
		testPlant(2, "Kentang", 15, 25, 60, 80),
	}
	readings := []weather.Reading{reading(24, 75), reading(16, 65), reading(29, 88)}

	first := Score(plants, readings)
	second := Score(plants, readings)
	assert.Equal(t, first, second)
}

func TestScore_CountNeverExceedsReadings(t *testing.T) {
	p := testPlant(1, "Kangkung", -90, 70, 0, 100)
	readings := []weather.Reading{reading(25, 70), reading(30, 90), {Temperature: fp(20)}}

	got := Score([]*plant.Plant{p}, readings)[0].SuitableCount
	assert.Equal(t, 2, got)
	assert.LessOrEqual(t, got, len(readings))
}

func TestSuitabilityPercentage(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		window int
		want   int
	}{
		{"EightOfForty", 8, 40, 20},
		{"FullWindow", 40, 40, 100},
		{"RoundsHalfUp", 1, 8, 13},
		{"RoundsDown", 1, 3, 33},
		{"Zero", 0, 40, 0},
		{"ExactShareBeyondWindow", 45, 40, 113},
		{"ZeroWindow", 5, 0, 0},
		{"NegativeWindow", 5, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuitabilityPercentage(tt.count, tt.window))
		})
	}
}

func TestRatingFor(t *testing.T) {
	tests := map[int]Rating{
		100: RatingExcellent,
		80:  RatingExcellent,
		79:  RatingGood,
		60:  RatingGood,
		59:  RatingFair,
		40:  RatingFair,
		39:  RatingPoor,
		20:  RatingPoor,
		19:  RatingUnsuitable,
		0:   RatingUnsuitable,
	}

	for percent, want := range tests {
		assert.Equal(t, want, RatingFor(percent), "percent=%d", percent)
	}
}

func TestRank_SortsDescendingAndIsStable(t *testing.T) {
	a := Result{Plant: testPlant(1, "A", 0, 0, 0, 0), SuitableCount: 3}
	b := Result{Plant: testPlant(2, "B", 0, 0, 0, 0), SuitableCount: 7}
	c := Result{Plant: testPlant(3, "C", 0, 0, 0, 0), SuitableCount: 3}
	input := []Result{a, b, c}

	ranked := Rank(input)

	assert.Equal(t, []string{"B", "A", "C"}, []string{ranked[0].Plant.Name, ranked[1].Plant.Name, ranked[2].Plant.Name})
	assert.Equal(t, "A", input[0].Plant.Name, "input must not be reordered")
}
