// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cropcast.app/internal/core/location"
	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/recommendation"
	"cropcast.app/internal/core/user"
	"cropcast.app/internal/core/weather"
	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router                *gin.Engine
	config                ServerConfig
	plantUseCase          PlantUseCase
	weatherUseCase        WeatherUseCase
	locationUseCase       LocationUseCase
	recommendationUseCase RecommendationUseCase
	authUseCase           AuthUseCase
	metricsSummary        MetricsSummary
	healthChecker         ports.SystemHealthChecker
	prometheusHandler     http.Handler
	logger                ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type PlantUseCase interface {
	ListVisible(ctx context.Context, params plant.ListParams) ([]*plant.Plant, error)
	Get(ctx context.Context, params plant.GetParams) (*plant.Plant, error)
	Create(ctx context.Context, params plant.CreateParams) (*plant.Plant, error)
	Update(ctx context.Context, params plant.UpdateParams) (*plant.Plant, error)
	Delete(ctx context.Context, params plant.DeleteParams) error
}

type WeatherUseCase interface {
	GetCurrent(ctx context.Context, coords weather.Coordinates) (*weather.Current, error)
	GetForecast(ctx context.Context, coords weather.Coordinates) (*weather.Forecast, error)
}

type LocationUseCase interface {
	Reverse(ctx context.Context, coords weather.Coordinates) (*location.Place, error)
}

type RecommendationUseCase interface {
	Recommend(ctx context.Context, req recommendation.Request) (*recommendation.Report, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, params user.RegisterParams) (*user.User, error)
	Login(ctx context.Context, params user.LoginParams) (*user.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*user.User, error)
	Logout(ctx context.Context, token string) error
}

type MetricsSummary interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config                ServerConfig
	PlantUseCase          PlantUseCase
	WeatherUseCase        WeatherUseCase
	LocationUseCase       LocationUseCase
	RecommendationUseCase RecommendationUseCase
	AuthUseCase           AuthUseCase
	MetricsSummary        MetricsSummary
	HealthChecker         ports.SystemHealthChecker
	// PrometheusHandler serves /metrics. Defaults to 404 when nil.
	PrometheusHandler http.Handler
	Logger            ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Logger))
	router.Use(cors.New(corsConfig(opts.Config.AllowedOrigins)))

	server := &HTTPServerAdapter{
		router:                router,
		config:                opts.Config,
		plantUseCase:          opts.PlantUseCase,
		weatherUseCase:        opts.WeatherUseCase,
		locationUseCase:       opts.LocationUseCase,
		recommendationUseCase: opts.RecommendationUseCase,
		authUseCase:           opts.AuthUseCase,
		metricsSummary:        opts.MetricsSummary,
		healthChecker:         opts.HealthChecker,
		prometheusHandler:     opts.PrometheusHandler,
		logger:                opts.Logger,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.PlantUseCase == nil {
		return errors.NewValidationError("plant use case is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.LocationUseCase == nil {
		return errors.NewValidationError("location use case is required")
	}
	if opts.RecommendationUseCase == nil {
		return errors.NewValidationError("recommendation use case is required")
	}
	if opts.AuthUseCase == nil {
		return errors.NewValidationError("auth use case is required")
	}
	if opts.MetricsSummary == nil {
		return errors.NewValidationError("metrics summary is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/health", s.getHealth)
	if s.prometheusHandler != nil {
		s.router.GET("/metrics", gin.WrapH(s.prometheusHandler))
	}

	api := s.router.Group("/api")
	api.GET("/metrics", s.getMetrics)

	plants := api.Group("/plants")
	{
		plants.GET("", s.optionalSession(), s.listPlants)
		plants.GET("/:id", s.optionalSession(), s.getPlant)
		plants.POST("", s.requireSession(), s.createPlant)
		plants.PUT("/:id", s.requireSession(), s.updatePlant)
		plants.DELETE("/:id", s.requireSession(), s.deletePlant)
	}

	weatherGroup := api.Group("/weather")
	{
		weatherGroup.GET("/current", s.getCurrentWeather)
		weatherGroup.GET("/forecast", s.getForecast)
	}

	api.GET("/location/reverse", s.reverseGeocode)
	api.GET("/recommendations/planting", s.optionalSession(), s.getPlantingRecommendations)

	auth := api.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.POST("/logout", s.requireSession(), s.logout)
		auth.GET("/session", s.requireSession(), s.getSession)
	}
}

// Handler returns the HTTP handler serving every route
func (s *HTTPServerAdapter) Handler() http.Handler {
	return s.router
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			ports.F("method", c.Request.Method),
			ports.F("path", c.FullPath()),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()))
	}
}
