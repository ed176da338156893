package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"cropcast.app/internal/ports"
)

const (
	statusHealthy   = ports.HealthStatusHealthy
	statusUnhealthy = ports.HealthStatusUnhealthy
)

// DatabaseHealthChecker implements database health checking
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = statusUnhealthy
		status.Error = "database instance is nil"
		return status
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = statusHealthy
	status.Details["connected"] = true
	status.Details["dialect"] = d.db.Dialector.Name()
	return status
}

// WeatherProvidersHealthChecker reports whether any weather provider is configured
type WeatherProvidersHealthChecker struct {
	manager ports.WeatherProviderManager
}

// NewWeatherProvidersHealthChecker creates a new weather providers health checker
func NewWeatherProvidersHealthChecker(manager ports.WeatherProviderManager) *WeatherProvidersHealthChecker {
	return &WeatherProvidersHealthChecker{manager: manager}
}

// Check inspects the configured provider chain without calling upstream APIs
func (w *WeatherProvidersHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: "weatherProviders", Status: statusHealthy}

	if w.manager == nil {
		status.Status = statusUnhealthy
		status.Error = "weather provider manager is not available"
		return status
	}

	info := w.manager.GetProviderInfo()
	status.Details = map[string]interface{}{
		"provider_order": info["provider_order"],
	}
	if total, _ := info["total_providers"].(int); total == 0 {
		status.Status = statusUnhealthy
		status.Error = "no weather providers configured"
	}
	return status
}

// GeocoderHealthChecker reports reverse geocoding availability
type GeocoderHealthChecker struct {
	geocoder ports.Geocoder
	config   ports.ConfigProvider
}

// NewGeocoderHealthChecker creates a new geocoder health checker
func NewGeocoderHealthChecker(geocoder ports.Geocoder, config ports.ConfigProvider) *GeocoderHealthChecker {
	return &GeocoderHealthChecker{geocoder: geocoder, config: config}
}

// Check reports the geocoder as healthy when configured; a disabled geocoder is not a failure
func (g *GeocoderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	enabled := g.config.GetGeocodingConfig().Enabled
	status := ports.HealthStatus{
		Component: "geocoder",
		Status:    statusHealthy,
		Details:   map[string]interface{}{"enabled": enabled},
	}

	if !enabled {
		return status
	}
	if g.geocoder == nil {
		status.Status = statusUnhealthy
		status.Error = "geocoder is enabled but not configured"
		return status
	}
	status.Details["provider"] = g.geocoder.GetProviderName()
	return status
}

// Pinger is implemented by cache backends that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker pings the cache backend
type CacheHealthChecker struct {
	cache     Pinger
	cacheType string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache Pinger, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

// Check pings the cache
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details:   map[string]interface{}{"type": c.cacheType},
	}

	if c.cache == nil {
		status.Status = statusUnhealthy
		status.Error = "cache is not available"
		return status
	}
	if err := c.cache.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
	}
	return status
}

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

// NewSystemHealthChecker creates a system health checker from named component checkers.
// Nil checkers are skipped.
func NewSystemHealthChecker(checkers map[string]ports.HealthChecker) *SystemHealthChecker {
	active := make(map[string]ports.HealthChecker, len(checkers))
	for name, checker := range checkers {
		if checker != nil {
			active[name] = checker
		}
	}
	return &SystemHealthChecker{checkers: active}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}
	return results
}

// IsHealthy reports whether every status in results is healthy
func IsHealthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status != statusHealthy {
			return false
		}
	}
	return true
}
