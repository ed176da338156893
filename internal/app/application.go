package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"cropcast.app/internal/adapters/api"
	"cropcast.app/internal/adapters/infrastructure"
	"cropcast.app/internal/config"
	"cropcast.app/internal/core/location"
	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/recommendation"
	"cropcast.app/internal/core/user"
	"cropcast.app/internal/core/weather"
	"cropcast.app/internal/ports"
	"cropcast.app/internal/seed"
)

const cachePurgeSchedule = "@every 10m"

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	plantUseCase          *plant.UseCase
	weatherUseCase        *weather.UseCase
	locationUseCase       *location.UseCase
	recommendationUseCase *recommendation.UseCase
	userUseCase           *user.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
	scheduler  *cron.Cron
	health     *infrastructure.SystemHealthChecker

	// Infrastructure
	ports     *ports.ApplicationPorts
	startedAt time.Time
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig builds the application from an already validated configuration
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, depContainer *DependencyContainer) (*Application, error) {
	app := &Application{
		config:    cfg,
		deps:      depContainer,
		ports:     depContainer.ApplicationPorts(),
		startedAt: time.Now(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	if err := app.initializeScheduler(); err != nil {
		return nil, fmt.Errorf("initialize scheduler: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	plantUseCase, err := plant.NewUseCase(plant.UseCaseDependencies{
		PlantRepo: a.ports.PlantRepository,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create plant use case: %w", err)
	}
	a.plantUseCase = plantUseCase

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Cache:           a.ports.WeatherCache,
		Config:          a.ports.ConfigProvider,
		Logger:          a.ports.Logger,
		Metrics:         a.ports.WeatherMetrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	locationUseCase, err := location.NewUseCase(location.UseCaseDependencies{
		Geocoder: a.ports.Geocoder,
		Cache:    a.ports.PlaceCache,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create location use case: %w", err)
	}
	a.locationUseCase = locationUseCase

	recommendationUseCase, err := recommendation.NewUseCase(recommendation.UseCaseDependencies{
		Catalog:   a.plantUseCase,
		Forecasts: a.weatherUseCase,
		Config:    a.ports.ConfigProvider,
		Logger:    a.ports.Logger,
		Metrics:   a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create recommendation use case: %w", err)
	}
	a.recommendationUseCase = recommendationUseCase

	userUseCase, err := user.NewUseCase(user.UseCaseDependencies{
		UserRepo:    a.ports.UserRepository,
		SessionRepo: a.ports.SessionRepository,
		Hasher:      a.ports.PasswordHasher,
		Config:      a.ports.ConfigProvider,
		Logger:      a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create user use case: %w", err)
	}
	a.userUseCase = userUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if err := api.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	metricsSummary := infrastructure.NewMetricsSummaryAdapter(infrastructure.MetricsSummaryConfig{
		WeatherMetrics: a.ports.WeatherMetrics,
		StartedAt:      a.startedAt,
	})
	systemHealthChecker := infrastructure.NewSystemHealthChecker(a.deps.HealthCheckers())
	a.health = systemHealthChecker

	var prometheusHandler http.Handler
	if collector := a.deps.MetricsCollector(); collector != nil {
		prometheusHandler = collector.Handler()
	}

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:           a.config.Server.Port,
			AllowedOrigins: a.config.Server.AllowedOrigins,
		},
		PlantUseCase:          a.plantUseCase,
		WeatherUseCase:        a.weatherUseCase,
		LocationUseCase:       a.locationUseCase,
		RecommendationUseCase: a.recommendationUseCase,
		AuthUseCase:           a.userUseCase,
		MetricsSummary:        metricsSummary,
		HealthChecker:         systemHealthChecker,
		PrometheusHandler:     prometheusHandler,
		Logger:                a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	// Store router for testing access
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) initializeScheduler() error {
	a.scheduler = cron.New()

	if _, err := a.scheduler.AddFunc(a.config.Scheduler.SessionCleanupSchedule, a.cleanupExpiredSessions); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	if a.config.Cache.Type == config.CacheTypeMemory {
		if _, err := a.scheduler.AddFunc(cachePurgeSchedule, a.purgeExpiredCache); err != nil {
			return fmt.Errorf("schedule cache purge: %w", err)
		}
	}

	return nil
}

func (a *Application) cleanupExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := a.userUseCase.CleanupExpiredSessions(ctx); err != nil {
		slog.Error("Error cleaning up expired sessions", "error", err)
	}
}

func (a *Application) purgeExpiredCache() {
	if purged := a.deps.PurgeExpiredCache(); purged > 0 {
		slog.Debug("Expired cache entries purged", "purged", purged)
	}
}

// SeedCatalog inserts the embedded crop catalog, skipping plants that already exist
func (a *Application) SeedCatalog(ctx context.Context) (seed.Result, error) {
	entries, err := seed.DefaultCatalog()
	if err != nil {
		return seed.Result{}, fmt.Errorf("load default catalog: %w", err)
	}

	seeder, err := seed.NewSeeder(seed.SeederDependencies{
		PlantRepo: a.ports.PlantRepository,
		Logger:    a.ports.Logger,
	})
	if err != nil {
		return seed.Result{}, fmt.Errorf("create seeder: %w", err)
	}

	return seeder.Seed(ctx, entries)
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if a.config.Database.SeedOnStart {
		if _, err := a.SeedCatalog(ctx); err != nil {
			return fmt.Errorf("seed plant catalog: %w", err)
		}
	}

	a.reportStartupHealth(ctx)

	a.scheduler.Start()
	slog.Info("Scheduler started", "session_cleanup", a.config.Scheduler.SessionCleanupSchedule)

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// reportStartupHealth logs unhealthy components without blocking startup
func (a *Application) reportStartupHealth(ctx context.Context) {
	results := a.health.CheckAll(ctx)
	if infrastructure.IsHealthy(results) {
		slog.Info("All components healthy", "components", len(results))
		return
	}
	for name, status := range results {
		if status.Status != ports.HealthStatusHealthy {
			slog.Warn("Component unhealthy at startup", "component", name, "error", status.Error)
		}
	}
}

// Shutdown stops the scheduler, drains the HTTP server and releases the database and cache.
// Running jobs get until ctx expires to finish.
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	select {
	case <-a.scheduler.Stop().Done():
	case <-ctx.Done():
		slog.Warn("Scheduler jobs still running at shutdown deadline")
	}

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.deps.Cleanup()

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetPlantUseCase returns the plant use case for testing
func (a *Application) GetPlantUseCase() *plant.UseCase {
	return a.plantUseCase
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

// GetRecommendationUseCase returns the recommendation use case for testing
func (a *Application) GetRecommendationUseCase() *recommendation.UseCase {
	return a.recommendationUseCase
}

// GetUserUseCase returns the user use case for testing
func (a *Application) GetUserUseCase() *user.UseCase {
	return a.userUseCase
}
