package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"

	"cropcast.app/pkg/errors"
)

const (
	maxRedisDB            = 15
	maxCacheTTLMinutes    = 1440
	maxGeocodeTTLMinutes  = 43200
	maxForecastDays       = 5
	maxForecastWindow     = 1000
	maxPortNumber         = 65535
	minSessionTTL         = time.Minute
	maxRequestsPerSecond  = 50
	maxHTTPTimeoutSeconds = 120
)

// Config represents the application configuration structure
type Config struct {
	Server         ServerConfig         `split_words:"true"`
	Database       DatabaseConfig       `split_words:"true"`
	Weather        WeatherConfig        `split_words:"true"`
	Geocoding      GeocodingConfig      `split_words:"true"`
	Auth           AuthConfig           `split_words:"true"`
	Cache          CacheConfig          `split_words:"true"`
	Scheduler      SchedulerConfig      `split_words:"true"`
	Recommendation RecommendationConfig `split_words:"true"`
	LogLevel       string               `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port           int      `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// DatabaseDriver selects the gorm dialector
type DatabaseDriver string

const (
	DatabaseDriverPostgres DatabaseDriver = "postgres"
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
)

type DatabaseConfig struct {
	Driver      DatabaseDriver `envconfig:"DB_DRIVER" default:"postgres"`
	Host        string         `envconfig:"DB_HOST" default:"localhost"`
	Port        int            `envconfig:"DB_PORT" default:"5432"`
	User        string         `envconfig:"DB_USER" default:"postgres"`
	Password    string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string         `envconfig:"DB_NAME" default:"cropcast"`
	SSLMode     string         `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath  string         `envconfig:"DB_SQLITE_PATH" default:"cropcast.db"`
	SeedOnStart bool           `envconfig:"DB_SEED_ON_START" default:"false"`
}

func (c DatabaseConfig) GetDSN() string {
	if c.Driver == DatabaseDriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	OpenWeatherMapKey       string   `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL   string   `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIKey           string   `envconfig:"WEATHER_API_KEY"`
	WeatherAPIBaseURL       string   `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	ProviderOrder           []string `envconfig:"WEATHER_PROVIDER_ORDER" default:"openweathermap,weatherapi"`
	EnableCache             bool     `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging           bool     `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	CacheTTLMinutes         int      `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	ForecastCacheTTLMinutes int      `envconfig:"WEATHER_FORECAST_CACHE_TTL_MINUTES" default:"60"`
	ForecastDays            int      `envconfig:"WEATHER_FORECAST_DAYS" default:"5"`
	TimeoutSeconds          int      `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
	LogFilePath             string   `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_providers.log"`
}

type GeocodingConfig struct {
	Enabled           bool    `envconfig:"GEOCODING_ENABLED" default:"true"`
	BaseURL           string  `envconfig:"GEOCODING_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent         string  `envconfig:"GEOCODING_USER_AGENT" default:"cropcast/1.0 (+https://cropcast.app)"`
	RequestsPerSecond float64 `envconfig:"GEOCODING_REQUESTS_PER_SECOND" default:"1"`
	CacheTTLMinutes   int     `envconfig:"GEOCODING_CACHE_TTL_MINUTES" default:"10080"`
	TimeoutSeconds    int     `envconfig:"GEOCODING_TIMEOUT_SECONDS" default:"10"`
}

type AuthConfig struct {
	SessionTTL time.Duration `envconfig:"AUTH_SESSION_TTL" default:"720h"`
	BcryptCost int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type SchedulerConfig struct {
	SessionCleanupSchedule string `envconfig:"SESSION_CLEANUP_SCHEDULE" default:"@every 1h"`
}

type RecommendationConfig struct {
	// Number of samples the forecast horizon is expected to hold (5 days x 8 three-hour slots).
	ForecastWindowSlots int `envconfig:"RECOMMENDATION_FORECAST_WINDOW_SLOTS" default:"40"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Recommendation.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if len(s.AllowedOrigins) == 0 {
		return errors.NewConfigurationError("CORS_ALLOWED_ORIGINS cannot be empty", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DatabaseDriverSQLite:
		if strings.TrimSpace(d.SQLitePath) == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER=sqlite", nil)
		}
		return nil
	case DatabaseDriverPostgres:
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: postgres, sqlite", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if w.OpenWeatherMapKey == "" && w.WeatherAPIKey == "" {
		return errors.NewConfigurationError("at least one weather provider API key must be configured", nil)
	}

	if w.OpenWeatherMapKey != "" && !isHTTPURL(w.OpenWeatherMapBaseURL) {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.WeatherAPIKey != "" && !isHTTPURL(w.WeatherAPIBaseURL) {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}

	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.ForecastCacheTTLMinutes < 1 || w.ForecastCacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_FORECAST_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.ForecastDays < 1 || w.ForecastDays > maxForecastDays {
		return errors.NewConfigurationError("WEATHER_FORECAST_DAYS must be between 1 and 5", nil)
	}
	if w.TimeoutSeconds < 1 || w.TimeoutSeconds > maxHTTPTimeoutSeconds {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}

	validProviders := map[string]bool{
		"openweathermap": true,
		"weatherapi":     true,
	}

	for _, provider := range w.ProviderOrder {
		if !validProviders[provider] {
			return errors.NewConfigurationError(fmt.Sprintf("invalid weather provider in order: %s", provider), nil)
		}
	}

	return nil
}

func (g *GeocodingConfig) Validate() error {
	if !g.Enabled {
		return nil
	}
	if !isHTTPURL(g.BaseURL) {
		return errors.NewConfigurationError("GEOCODING_BASE_URL must start with http:// or https://", nil)
	}
	if strings.TrimSpace(g.UserAgent) == "" {
		return errors.NewConfigurationError("GEOCODING_USER_AGENT cannot be empty", nil)
	}
	if g.RequestsPerSecond <= 0 || g.RequestsPerSecond > maxRequestsPerSecond {
		return errors.NewConfigurationError("GEOCODING_REQUESTS_PER_SECOND must be greater than 0 and at most 50", nil)
	}
	if g.CacheTTLMinutes < 1 || g.CacheTTLMinutes > maxGeocodeTTLMinutes {
		return errors.NewConfigurationError("GEOCODING_CACHE_TTL_MINUTES must be between 1 and 43200 minutes", nil)
	}
	if g.TimeoutSeconds < 1 || g.TimeoutSeconds > maxHTTPTimeoutSeconds {
		return errors.NewConfigurationError("GEOCODING_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	return nil
}

func (a *AuthConfig) Validate() error {
	if a.SessionTTL < minSessionTTL {
		return errors.NewConfigurationError("AUTH_SESSION_TTL must be at least 1m", nil)
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		return errors.NewConfigurationError(
			fmt.Sprintf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost), nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	if _, err := cron.ParseStandard(s.SessionCleanupSchedule); err != nil {
		return errors.NewConfigurationError("SESSION_CLEANUP_SCHEDULE must be a valid cron expression", err)
	}
	return nil
}

func (r *RecommendationConfig) Validate() error {
	if r.ForecastWindowSlots < 1 || r.ForecastWindowSlots > maxForecastWindow {
		return errors.NewConfigurationError("RECOMMENDATION_FORECAST_WINDOW_SLOTS must be between 1 and 1000", nil)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
