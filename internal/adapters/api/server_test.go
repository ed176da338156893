package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/core/location"
	"cropcast.app/internal/core/plant"
	"cropcast.app/internal/core/recommendation"
	"cropcast.app/internal/core/user"
	"cropcast.app/internal/core/weather"
	"cropcast.app/internal/mocks"
	"cropcast.app/internal/ports"
)

type mockPlantUseCase struct{ mock.Mock }

func (m *mockPlantUseCase) ListVisible(ctx context.Context, params plant.ListParams) ([]*plant.Plant, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).([]*plant.Plant)
	return r0, args.Error(1)
}

func (m *mockPlantUseCase) Get(ctx context.Context, params plant.GetParams) (*plant.Plant, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).(*plant.Plant)
	return r0, args.Error(1)
}

func (m *mockPlantUseCase) Create(ctx context.Context, params plant.CreateParams) (*plant.Plant, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).(*plant.Plant)
	return r0, args.Error(1)
}

func (m *mockPlantUseCase) Update(ctx context.Context, params plant.UpdateParams) (*plant.Plant, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).(*plant.Plant)
	return r0, args.Error(1)
}

func (m *mockPlantUseCase) Delete(ctx context.Context, params plant.DeleteParams) error {
	return m.Called(ctx, params).Error(0)
}

type mockLocationUseCase struct{ mock.Mock }

func (m *mockLocationUseCase) Reverse(ctx context.Context, coords weather.Coordinates) (*location.Place, error) {
	args := m.Called(ctx, coords)
	r0, _ := args.Get(0).(*location.Place)
	return r0, args.Error(1)
}

type mockRecommendationUseCase struct{ mock.Mock }

func (m *mockRecommendationUseCase) Recommend(ctx context.Context, req recommendation.Request) (*recommendation.Report, error) {
	args := m.Called(ctx, req)
	r0, _ := args.Get(0).(*recommendation.Report)
	return r0, args.Error(1)
}

type mockAuthUseCase struct{ mock.Mock }

func (m *mockAuthUseCase) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).(*user.User)
	return r0, args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, params user.LoginParams) (*user.LoginResult, error) {
	args := m.Called(ctx, params)
	r0, _ := args.Get(0).(*user.LoginResult)
	return r0, args.Error(1)
}

func (m *mockAuthUseCase) Authenticate(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	r0, _ := args.Get(0).(*user.User)
	return r0, args.Error(1)
}

func (m *mockAuthUseCase) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockMetricsSummary struct{ mock.Mock }

func (m *mockMetricsSummary) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	args := m.Called(ctx)
	r0, _ := args.Get(0).(map[string]interface{})
	return r0, args.Error(1)
}

type stubHealthChecker map[string]ports.HealthStatus

func (s stubHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return s
}

type testServer struct {
	router          *gin.Engine
	plants          *mockPlantUseCase
	weatherProvider *mocks.WeatherProviderManager
	weatherCache    *mocks.WeatherCache
	location        *mockLocationUseCase
	recommendations *mockRecommendationUseCase
	auth            *mockAuthUseCase
	metrics         *mockMetricsSummary
	health          stubHealthChecker
}

var grower = &user.User{ID: 7, Name: "Sari", Email: "sari@example.com", Location: "Bogor"}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	ts := &testServer{
		plants:          &mockPlantUseCase{},
		weatherProvider: mocks.NewWeatherProviderManager(t),
		weatherCache:    mocks.NewWeatherCache(t),
		location:        &mockLocationUseCase{},
		recommendations: &mockRecommendationUseCase{},
		auth:            &mockAuthUseCase{},
		metrics:         &mockMetricsSummary{},
		health:          stubHealthChecker{},
	}
	for _, m := range []interface {
		Test(mock.TestingT)
		AssertExpectations(mock.TestingT) bool
	}{&ts.plants.Mock, &ts.location.Mock, &ts.recommendations.Mock, &ts.auth.Mock, &ts.metrics.Mock} {
		m.Test(t)
		t.Cleanup(func() { m.AssertExpectations(t) })
	}

	cfg := mocks.NewConfigProvider(t)
	cfg.On("GetWeatherConfig").Return(ports.WeatherConfig{
		EnableCache:      true,
		CacheTTL:         10 * time.Minute,
		ForecastCacheTTL: time.Hour,
	}).Maybe()

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: ts.weatherProvider,
		Cache:           ts.weatherCache,
		Config:          cfg,
		Logger:          mocks.NewLogger(t).AllowAll(),
		Metrics:         mocks.NewWeatherMetrics(t),
	})
	require.NoError(t, err)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:                ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		PlantUseCase:          ts.plants,
		WeatherUseCase:        weatherUseCase,
		LocationUseCase:       ts.location,
		RecommendationUseCase: ts.recommendations,
		AuthUseCase:           ts.auth,
		MetricsSummary:        ts.metrics,
		HealthChecker:         ts.health,
		PrometheusHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("cropcast_recommendations_total 3\n"))
		}),
		Logger: mocks.NewLogger(t).AllowAll(),
	})
	require.NoError(t, err)

	ts.router = server.GetRouter()
	return ts
}

// signIn makes token resolve to grower
func (ts *testServer) signIn(token string) {
	ts.auth.On("Authenticate", mock.Anything, token).Return(grower, nil)
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func TestServerOptions_Validate(t *testing.T) {
	opts := ServerOptions{}
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plant use case is required")

	_, err = NewHTTPServerAdapter(ServerOptions{PlantUseCase: &mockPlantUseCase{}})
	assert.Error(t, err)
}

func TestCorsConfig(t *testing.T) {
	wildcard := corsConfig([]string{"https://app.example.com", "*"})
	assert.True(t, wildcard.AllowAllOrigins)
	assert.Empty(t, wildcard.AllowOrigins)

	listed := corsConfig([]string{"https://app.example.com"})
	assert.False(t, listed.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com"}, listed.AllowOrigins)
	assert.Contains(t, listed.AllowHeaders, "Authorization")
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/plants", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Health(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		ts := newTestServer(t)
		ts.health["database"] = ports.HealthStatus{Component: "database", Status: ports.HealthStatusHealthy}

		w := ts.do(http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		decode(t, w, &response)
		assert.Equal(t, "healthy", response.Status)
		assert.Contains(t, response.Components, "database")
	})

	t.Run("Unhealthy", func(t *testing.T) {
		ts := newTestServer(t)
		ts.health["database"] = ports.HealthStatus{Component: "database", Status: ports.HealthStatusHealthy}
		ts.health["cache"] = ports.HealthStatus{Component: "cache", Status: ports.HealthStatusUnhealthy, Error: "connection refused"}

		w := ts.do(http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		decode(t, w, &response)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "connection refused", response.Components["cache"].Error)
	})
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	ts.metrics.On("GetMetrics", mock.Anything).Return(map[string]interface{}{"uptime_seconds": 12.0}, nil)

	w := ts.do(http.MethodGet, "/api/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, 12.0, body["uptime_seconds"])

	w = ts.do(http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cropcast_recommendations_total")
}
