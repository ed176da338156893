package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/config"
	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/user"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Database: config.DatabaseConfig{
			Driver:     config.DatabaseDriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "cropcast.db"),
		},
		Weather: config.WeatherConfig{
			OpenWeatherMapKey:       "owm-key",
			OpenWeatherMapBaseURL:   "http://127.0.0.1:1",
			WeatherAPIBaseURL:       "http://127.0.0.1:1",
			ProviderOrder:           []string{"openweathermap", "weatherapi"},
			EnableCache:             true,
			CacheTTLMinutes:         10,
			ForecastCacheTTLMinutes: 60,
			ForecastDays:            5,
			TimeoutSeconds:          1,
		},
		Geocoding: config.GeocodingConfig{
			Enabled:           true,
			BaseURL:           "http://127.0.0.1:1",
			UserAgent:         "cropcast-test",
			RequestsPerSecond: 1,
			CacheTTLMinutes:   60,
			TimeoutSeconds:    1,
		},
		Auth:           config.AuthConfig{SessionTTL: time.Hour, BcryptCost: 4},
		Cache:          config.CacheConfig{Type: config.CacheTypeMemory},
		Scheduler:      config.SchedulerConfig{SessionCleanupSchedule: "@every 1h"},
		Recommendation: config.RecommendationConfig{ForecastWindowSlots: 40},
		LogLevel:       "info",
	}
}

func registerParams() user.RegisterParams {
	return user.RegisterParams{
		Name:     "Siti",
		Email:    "siti@example.com",
		Password: "kebun-sayur-1",
		Location: "Bogor",
	}
}

func loginParams() user.LoginParams {
	return user.LoginParams{Email: "siti@example.com", Password: "kebun-sayur-1"}
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	application, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})
	return application
}

func TestApplication_Health(t *testing.T) {
	application := newTestApplication(t)

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status     string                     `json:"status"`
		Components map[string]json.RawMessage `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Contains(t, body.Components, "database")
	assert.Contains(t, body.Components, "weather_providers")
	assert.Contains(t, body.Components, "geocoder")
	assert.Contains(t, body.Components, "cache")
}

func TestApplication_PrometheusEndpoint(t *testing.T) {
	application := newTestApplication(t)

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cropcast_cache_hits_total")
}

func TestApplication_SeedCatalog(t *testing.T) {
	application := newTestApplication(t)
	ctx := context.Background()

	result, err := application.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Created)

	again, err := application.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 10, again.Skipped)

	plants, err := application.GetPlantUseCase().ListVisible(ctx, plant.ListParams{})
	require.NoError(t, err)
	assert.Len(t, plants, 10)

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plants?q=padi", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Padi", listed[0]["name"])
}

func TestApplication_RegisterAndCreatePrivatePlant(t *testing.T) {
	application := newTestApplication(t)
	ctx := context.Background()

	_, err := application.GetUserUseCase().Register(ctx, registerParams())
	require.NoError(t, err)

	login, err := application.GetUserUseCase().Login(ctx, loginParams())
	require.NoError(t, err)

	created, err := application.GetPlantUseCase().Create(ctx, plant.CreateParams{
		OwnerID: login.User.ID,
		Input: plant.Input{
			Name:          "Selada",
			Type:          "Sayuran",
			GrowingPeriod: 40,
			TempMin:       15,
			TempMax:       24,
			HumidityMin:   60,
			HumidityMax:   80,
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plants", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Selada")

	req := httptest.NewRequest(http.MethodGet, "/api/plants", nil)
	req.Header.Set("Authorization", "Bearer "+login.Session.Token)
	w = httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Name)

	removed, err := application.GetUserUseCase().CleanupExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestNewApplicationWithConfig_BadDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := NewApplicationWithConfig(cfg)
	assert.Error(t, err)
}

func TestDependencyContainer_PurgeExpiredCache(t *testing.T) {
	application := newTestApplication(t)
	assert.Equal(t, 0, application.deps.PurgeExpiredCache())
}
