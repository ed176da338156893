package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cropcast.app/internal/ports"
)

// HealthResponse aggregates component health
type HealthResponse struct {
	Status     string                       `json:"status"`
	Timestamp  time.Time                    `json:"timestamp"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status := http.StatusOK
	response := HealthResponse{
		Status:     ports.HealthStatusHealthy,
		Timestamp:  time.Now().UTC(),
		Components: results,
	}

	for name, result := range results {
		if result.Status != ports.HealthStatusHealthy {
			status = http.StatusServiceUnavailable
			response.Status = ports.HealthStatusUnhealthy
			s.logger.Warn("Component unhealthy",
				ports.F("component", name),
				ports.F("error", result.Error))
		}
	}

	c.JSON(status, response)
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	s.logger.Debug("Metrics endpoint called")

	metrics, err := s.metricsSummary.GetMetrics(c.Request.Context())
	if err != nil {
		s.logger.Error("Error getting metrics", ports.F("error", err))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
