package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/recommendation"
)

// RecommendationItem is one ranked plant in a planting recommendation
type RecommendationItem struct {
	PlantID               uint   `json:"plantId"`
	Plant                 string `json:"plant"`
	PlantType             string `json:"plantType"`
	GrowingPeriod         int    `json:"growingPeriod"`
	IdealSeason           string `json:"idealSeason"`
	SuitableSlots         int    `json:"suitableSlots"`
	SuitabilityPercentage int    `json:"suitabilityPercentage"`
	Rating                string `json:"rating"`
}

// RecommendationResponse represents the HTTP response for planting recommendations
type RecommendationResponse struct {
	Recommendations    []RecommendationItem `json:"recommendations"`
	ReadingsEvaluated  int                  `json:"readingsEvaluated"`
	IncompleteReadings int                  `json:"incompleteReadings"`
	ForecastWindow     int                  `json:"forecastWindow"`
	Provider           string               `json:"provider"`
}

func newRecommendationResponse(report *recommendation.Report) RecommendationResponse {
	ranked := recommendation.Rank(report.Results)

	items := make([]RecommendationItem, 0, len(ranked))
	for _, r := range ranked {
		pct := recommendation.SuitabilityPercentage(r.SuitableCount, report.ForecastWindow)
		items = append(items, RecommendationItem{
			PlantID:               r.Plant.ID,
			Plant:                 r.Plant.Name,
			PlantType:             r.Plant.Type,
			GrowingPeriod:         r.Plant.GrowingPeriod,
			IdealSeason:           r.Plant.IdealSeason,
			SuitableSlots:         r.SuitableCount,
			SuitabilityPercentage: pct,
			Rating:                string(recommendation.RatingFor(pct)),
		})
	}

	return RecommendationResponse{
		Recommendations:    items,
		ReadingsEvaluated:  report.ReadingsEvaluated,
		IncompleteReadings: report.IncompleteReadings,
		ForecastWindow:     report.ForecastWindow,
		Provider:           report.Provider,
	}
}

// getPlantingRecommendations handles GET /api/recommendations/planting requests
func (s *HTTPServerAdapter) getPlantingRecommendations(c *gin.Context) {
	coords, ok := s.bindCoordinates(c)
	if !ok {
		return
	}

	report, err := s.recommendationUseCase.Recommend(c.Request.Context(), recommendation.Request{
		Coordinates: coords,
		ViewerID:    viewerID(c),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecommendationResponse(report))
}
