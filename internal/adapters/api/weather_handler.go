package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/weather"
)

// CoordinatesQuery binds the lat and lon query parameters shared by location based endpoints
type CoordinatesQuery struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lon *float64 `form:"lon" binding:"required,longitude"`
}

func (q CoordinatesQuery) coordinates() weather.Coordinates {
	return weather.Coordinates{Lat: *q.Lat, Lon: *q.Lon}
}

// bindCoordinates reads lat and lon from the query string and writes an error response on failure
func (s *HTTPServerAdapter) bindCoordinates(c *gin.Context) (weather.Coordinates, bool) {
	var query CoordinatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, bindingError(err))
		return weather.Coordinates{}, false
	}
	return query.coordinates(), true
}

// CurrentWeatherResponse represents the HTTP response for current conditions
type CurrentWeatherResponse struct {
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	HumidityLevel string    `json:"humidityLevel"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReadingResponse is one forecast slot. Missing measurements are null.
type ReadingResponse struct {
	Time        time.Time `json:"time"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	Description string    `json:"description,omitempty"`
}

// ForecastResponse represents the HTTP response for a forecast
type ForecastResponse struct {
	Lat       float64           `json:"lat"`
	Lon       float64           `json:"lon"`
	Provider  string            `json:"provider"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Readings  []ReadingResponse `json:"readings"`
}

// getCurrentWeather handles GET /api/weather/current requests
func (s *HTTPServerAdapter) getCurrentWeather(c *gin.Context) {
	coords, ok := s.bindCoordinates(c)
	if !ok {
		return
	}

	current, err := s.weatherUseCase.GetCurrent(c.Request.Context(), coords)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CurrentWeatherResponse{
		Lat:           current.Coordinates.Lat,
		Lon:           current.Coordinates.Lon,
		Temperature:   current.Temperature,
		Humidity:      current.Humidity,
		HumidityLevel: current.HumidityDescription(),
		Description:   current.Description,
		Location:      current.Location,
		Timestamp:     current.Timestamp,
	})
}

// getForecast handles GET /api/weather/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	coords, ok := s.bindCoordinates(c)
	if !ok {
		return
	}

	forecast, err := s.weatherUseCase.GetForecast(c.Request.Context(), coords)
	if err != nil {
		s.handleError(c, err)
		return
	}

	readings := make([]ReadingResponse, 0, len(forecast.Readings))
	for _, r := range forecast.Readings {
		readings = append(readings, ReadingResponse{
			Time:        r.Time,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Description: r.Description,
		})
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Lat:       forecast.Coordinates.Lat,
		Lon:       forecast.Coordinates.Lon,
		Provider:  forecast.Provider,
		FetchedAt: forecast.FetchedAt,
		Readings:  readings,
	})
}
