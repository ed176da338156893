package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlaceResponse represents a reverse geocoded place
type PlaceResponse struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
	ShortName   string  `json:"shortName"`
}

// reverseGeocode handles GET /api/location/reverse requests
func (s *HTTPServerAdapter) reverseGeocode(c *gin.Context) {
	coords, ok := s.bindCoordinates(c)
	if !ok {
		return
	}

	place, err := s.locationUseCase.Reverse(c.Request.Context(), coords)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlaceResponse{
		Lat:         place.Coordinates.Lat,
		Lon:         place.Coordinates.Lon,
		DisplayName: place.DisplayName,
		ShortName:   place.ShortName,
	})
}
