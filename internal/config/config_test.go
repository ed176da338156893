package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast.app/pkg/errors"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Database: DatabaseConfig{
			Driver:  DatabaseDriverPostgres,
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "cropcast",
			SSLMode: "disable",
		},
		Weather: WeatherConfig{
			OpenWeatherMapKey:       "owm-key",
			OpenWeatherMapBaseURL:   "https://api.openweathermap.org/data/2.5",
			WeatherAPIBaseURL:       "https://api.weatherapi.com/v1",
			ProviderOrder:           []string{"openweathermap", "weatherapi"},
			CacheTTLMinutes:         10,
			ForecastCacheTTLMinutes: 60,
			ForecastDays:            5,
			TimeoutSeconds:          10,
		},
		Geocoding: GeocodingConfig{
			Enabled:           true,
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "cropcast-test",
			RequestsPerSecond: 1,
			CacheTTLMinutes:   60,
			TimeoutSeconds:    10,
		},
		Auth:           AuthConfig{SessionTTL: 720 * time.Hour, BcryptCost: 10},
		Cache:          CacheConfig{Type: CacheTypeMemory},
		Scheduler:      SchedulerConfig{SessionCleanupSchedule: "@every 1h"},
		Recommendation: RecommendationConfig{ForecastWindowSlots: 40},
		LogLevel:       "info",
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "owm-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, []string{"openweathermap", "weatherapi"}, cfg.Weather.ProviderOrder)
	assert.Equal(t, 5, cfg.Weather.ForecastDays)
	assert.Equal(t, 1.0, cfg.Geocoding.RequestsPerSecond)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, 40, cfg.Recommendation.ForecastWindowSlots)
	assert.Equal(t, "@every 1h", cfg.Scheduler.SessionCleanupSchedule)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "wa-key")
	t.Setenv("WEATHER_PROVIDER_ORDER", "weatherapi")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/cropcast.db")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RECOMMENDATION_FORECAST_WINDOW_SLOTS", "24")
	t.Setenv("AUTH_SESSION_TTL", "12h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"weatherapi"}, cfg.Weather.ProviderOrder)
	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/cropcast.db", cfg.Database.GetDSN())
	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 24, cfg.Recommendation.ForecastWindowSlots)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"Valid", func(c *Config) {}, false},
		{"InvalidPort", func(c *Config) { c.Server.Port = 0 }, true},
		{"NoOrigins", func(c *Config) { c.Server.AllowedOrigins = nil }, true},
		{"UnknownDriver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"SQLiteWithoutPath", func(c *Config) {
			c.Database.Driver = DatabaseDriverSQLite
			c.Database.SQLitePath = ""
		}, true},
		{"SQLiteIgnoresPostgresFields", func(c *Config) {
			c.Database.Driver = DatabaseDriverSQLite
			c.Database.SQLitePath = "file.db"
			c.Database.Host = ""
		}, false},
		{"BadSSLMode", func(c *Config) { c.Database.SSLMode = "sometimes" }, true},
		{"NoWeatherKeys", func(c *Config) { c.Weather.OpenWeatherMapKey = "" }, true},
		{"UnknownProvider", func(c *Config) { c.Weather.ProviderOrder = []string{"accuweather"} }, true},
		{"ForecastDaysTooLarge", func(c *Config) { c.Weather.ForecastDays = 10 }, true},
		{"GeocodingDisabledSkipsChecks", func(c *Config) {
			c.Geocoding.Enabled = false
			c.Geocoding.UserAgent = ""
		}, false},
		{"GeocodingNeedsUserAgent", func(c *Config) { c.Geocoding.UserAgent = " " }, true},
		{"GeocodingZeroRate", func(c *Config) { c.Geocoding.RequestsPerSecond = 0 }, true},
		{"ShortSession", func(c *Config) { c.Auth.SessionTTL = time.Second }, true},
		{"BcryptCostTooLow", func(c *Config) { c.Auth.BcryptCost = 2 }, true},
		{"UnknownCacheType", func(c *Config) { c.Cache.Type = CacheTypeUnknown }, true},
		{"RedisWithoutAddr", func(c *Config) {
			c.Cache.Type = CacheTypeRedis
			c.Cache.Redis = RedisConfig{DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1}
		}, true},
		{"BadCronSpec", func(c *Config) { c.Scheduler.SessionCleanupSchedule = "every hour" }, true},
		{"ZeroForecastWindow", func(c *Config) { c.Recommendation.ForecastWindowSlots = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCacheTypeFromString(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, CacheTypeFromString("Memory"))
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString(" redis "))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("memcached"))
	assert.Equal(t, "unknown", CacheTypeUnknown.String())
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := validConfig().Database
	cfg.Password = "secret"

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=cropcast sslmode=disable",
		cfg.GetDSN())
}
