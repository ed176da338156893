package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// PlantRequest is the body of plant create and update requests. Updates replace every field.
type PlantRequest struct {
	Name           string   `json:"name" binding:"required,max=100"`
	Type           string   `json:"type" binding:"required"`
	GrowingPeriod  int      `json:"growingPeriod" binding:"required,gt=0"`
	TempMin        *float64 `json:"tempMin" binding:"required"`
	TempMax        *float64 `json:"tempMax" binding:"required"`
	HumidityMin    *float64 `json:"humidityMin" binding:"required,gte=0,lte=100"`
	HumidityMax    *float64 `json:"humidityMax" binding:"required,gte=0,lte=100"`
	RainResistance string   `json:"rainResistance"`
	IdealSeason    string   `json:"idealSeason"`
	Notes          string   `json:"notes" binding:"max=2000"`
	IsPublic       bool     `json:"isPublic"`
}

func (r PlantRequest) toInput() plant.Input {
	return plant.Input{
		Name:           r.Name,
		Type:           r.Type,
		GrowingPeriod:  r.GrowingPeriod,
		TempMin:        *r.TempMin,
		TempMax:        *r.TempMax,
		HumidityMin:    *r.HumidityMin,
		HumidityMax:    *r.HumidityMax,
		RainResistance: r.RainResistance,
		IdealSeason:    r.IdealSeason,
		Notes:          r.Notes,
		IsPublic:       r.IsPublic,
	}
}

// PlantResponse represents a plant profile in API responses
type PlantResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	GrowingPeriod  int       `json:"growingPeriod"`
	TempMin        float64   `json:"tempMin"`
	TempMax        float64   `json:"tempMax"`
	HumidityMin    float64   `json:"humidityMin"`
	HumidityMax    float64   `json:"humidityMax"`
	RainResistance string    `json:"rainResistance"`
	IdealSeason    string    `json:"idealSeason"`
	Notes          string    `json:"notes"`
	IsPublic       bool      `json:"isPublic"`
	UserID         *uint     `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newPlantResponse(p *plant.Plant) PlantResponse {
	return PlantResponse{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		GrowingPeriod:  p.GrowingPeriod,
		TempMin:        p.TempMin,
		TempMax:        p.TempMax,
		HumidityMin:    p.HumidityMin,
		HumidityMax:    p.HumidityMax,
		RainResistance: p.RainResistance,
		IdealSeason:    p.IdealSeason,
		Notes:          p.Notes,
		IsPublic:       p.IsPublic,
		UserID:         p.OwnerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// listPlants handles GET /api/plants requests
func (s *HTTPServerAdapter) listPlants(c *gin.Context) {
	plants, err := s.plantUseCase.ListVisible(c.Request.Context(), plant.ListParams{
		ViewerID: viewerID(c),
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response := make([]PlantResponse, 0, len(plants))
	for _, p := range plants {
		response = append(response, newPlantResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// getPlant handles GET /api/plants/:id requests
func (s *HTTPServerAdapter) getPlant(c *gin.Context) {
	id, err := plantID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	p, err := s.plantUseCase.Get(c.Request.Context(), plant.GetParams{ID: id, ViewerID: viewerID(c)})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlantResponse(p))
}

// createPlant handles POST /api/plants requests
func (s *HTTPServerAdapter) createPlant(c *gin.Context) {
	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	p, err := s.plantUseCase.Create(c.Request.Context(), plant.CreateParams{
		OwnerID: currentUser(c).ID,
		Input:   req.toInput(),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPlantResponse(p))
}

// updatePlant handles PUT /api/plants/:id requests
func (s *HTTPServerAdapter) updatePlant(c *gin.Context) {
	id, err := plantID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req PlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	p, err := s.plantUseCase.Update(c.Request.Context(), plant.UpdateParams{
		ID:      id,
		OwnerID: currentUser(c).ID,
		Input:   req.toInput(),
	})
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlantResponse(p))
}

// deletePlant handles DELETE /api/plants/:id requests
func (s *HTTPServerAdapter) deletePlant(c *gin.Context) {
	id, err := plantID(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.plantUseCase.Delete(c.Request.Context(), plant.DeleteParams{ID: id, OwnerID: currentUser(c).ID}); err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Debug("Plant removed via API", ports.F("plantID", id))
	c.JSON(http.StatusOK, gin.H{"message": "Plant deleted successfully"})
}

func plantID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid plant ID")
	}
	return uint(id), nil
}
