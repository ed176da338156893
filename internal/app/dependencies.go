package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"cropcast.app/internal/adapters/database"
	"cropcast.app/internal/adapters/external"
	"cropcast.app/internal/adapters/infrastructure"
	"cropcast.app/internal/config"
	"cropcast.app/internal/ports"
)

type DependencyContainer struct {
	config     *config.Config
	db         *gorm.DB
	cache      external.CacheBackend
	fileLogger *infrastructure.FileLoggerAdapter
	metrics    *infrastructure.PrometheusMetricsCollector
	health     map[string]ports.HealthChecker
	ports      *ports.ApplicationPorts
}

// NewDependencyContainer opens the configured database, migrates it and wires every port
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return NewDependencyContainerWithDB(cfg, db)
}

// NewDependencyContainerWithDB wires every port around an already migrated database.
// The container owns db from here on and closes it on failure.
func NewDependencyContainerWithDB(cfg *config.Config, db *gorm.DB) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: cfg,
		db:     db,
	}

	if err := container.initializePorts(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	slog.Info("Initializing database connection...", "driver", cfg.Driver)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("Database connection established successfully")
	return db, nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger := c.createLogger()
	c.metrics = infrastructure.NewPrometheusMetricsCollector(nil)

	// Database repositories
	plantRepo := database.NewPlantRepositoryAdapter(c.db)
	userRepo := database.NewUserRepositoryAdapter(c.db)
	sessionRepo := database.NewSessionRepositoryAdapter(c.db)

	weatherCfg := c.config.Weather
	providerManager := external.NewWeatherProviderManagerAdapter(external.ProviderManagerConfig{
		WeatherAPIKey:     weatherCfg.WeatherAPIKey,
		WeatherAPIBaseURL: weatherCfg.WeatherAPIBaseURL,
		OpenWeatherKey:    weatherCfg.OpenWeatherMapKey,
		OpenWeatherURL:    weatherCfg.OpenWeatherMapBaseURL,
		ForecastDays:      weatherCfg.ForecastDays,
		Timeout:           time.Duration(weatherCfg.TimeoutSeconds) * time.Second,
		ProviderOrder:     weatherCfg.ProviderOrder,
		LogProviders:      weatherCfg.EnableLogging,
		Logger:            logger,
		Metrics:           c.metrics,
	})

	// If logging is enabled, wrap the provider manager with logging decorator
	if weatherCfg.EnableLogging {
		providerManager = external.NewWeatherProviderManagerLoggingDecorator(providerManager, logger)
		slog.Info("Weather provider logging enabled")
	}

	cacheBackend, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cacheBackend

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	instrumentedCache := external.NewInstrumentedCacheProvider(cacheBackend, c.metrics)
	serializer := external.JSONSerializer{}
	weatherCache := external.NewWeatherCacheAdapter(instrumentedCache, serializer)
	placeCache := external.NewPlaceCacheAdapter(instrumentedCache, serializer)

	geoCfg := c.config.Geocoding
	geocoder := external.NewNominatimGeocoderAdapter(external.NominatimGeocoderParams{
		BaseURL:           geoCfg.BaseURL,
		UserAgent:         geoCfg.UserAgent,
		RequestsPerSecond: geoCfg.RequestsPerSecond,
		Timeout:           time.Duration(geoCfg.TimeoutSeconds) * time.Second,
		Logger:            logger,
		Metrics:           c.metrics,
	})

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	weatherMetrics := external.NewWeatherMetricsAdapter(cacheBackend, providerManager, weatherCfg.EnableCache)

	c.health = map[string]ports.HealthChecker{
		"database":          infrastructure.NewDatabaseHealthChecker(c.db),
		"weather_providers": infrastructure.NewWeatherProvidersHealthChecker(providerManager),
		"geocoder":          infrastructure.NewGeocoderHealthChecker(geocoder, configProvider),
		"cache":             infrastructure.NewCacheHealthChecker(cacheBackend, c.config.Cache.Type.String()),
	}

	c.ports = &ports.ApplicationPorts{
		// Weather
		WeatherProvider: providerManager,
		WeatherCache:    weatherCache,
		WeatherMetrics:  weatherMetrics,

		// Location
		Geocoder:   geocoder,
		PlaceCache: placeCache,

		// Catalog and accounts
		PlantRepository:   plantRepo,
		UserRepository:    userRepo,
		SessionRepository: sessionRepo,
		PasswordHasher:    external.NewBcryptPasswordHasher(c.config.Auth.BcryptCost),

		// Cache
		CacheMetrics: cacheBackend,

		// Infrastructure
		ConfigProvider: configProvider,
		Logger:         logger,
		Metrics:        c.metrics,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// createLogger returns the slog adapter, teed into a JSON file when provider logging is enabled
func (c *DependencyContainer) createLogger() ports.Logger {
	var logger ports.Logger = &infrastructure.SlogLoggerAdapter{}

	weatherCfg := c.config.Weather
	if !weatherCfg.EnableLogging || weatherCfg.LogFilePath == "" {
		return logger
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(weatherCfg.LogFilePath)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return logger
	}

	c.fileLogger = fileLogger
	slog.Info("File logging enabled", "path", weatherCfg.LogFilePath)
	return infrastructure.NewTeeLogger(logger, fileLogger)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// MetricsCollector returns the prometheus collector backing /metrics
func (c *DependencyContainer) MetricsCollector() *infrastructure.PrometheusMetricsCollector {
	return c.metrics
}

// HealthCheckers returns the named component checkers
func (c *DependencyContainer) HealthCheckers() map[string]ports.HealthChecker {
	return c.health
}

// PurgeExpiredCache drops expired entries when the backend keeps them in process memory.
// Redis expires keys itself, so it reports zero.
func (c *DependencyContainer) PurgeExpiredCache() int {
	purger, ok := c.cache.(interface{ Purge() int })
	if !ok {
		return 0
	}
	return purger.Purge()
}

// Cleanup closes the cache connection, the log file and the database
func (c *DependencyContainer) Cleanup() {
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing cache", "error", err)
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil {
			slog.Warn("Error closing log file", "error", err)
		}
	}
	if c.db != nil {
		closeDB(c.db)
	}
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Warn("Error closing database", "error", err)
	}
}
