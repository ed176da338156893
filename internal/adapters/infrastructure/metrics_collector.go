package infrastructure

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cropcast.app/internal/ports"
)

const metricsNamespace = "cropcast"

// PrometheusMetricsCollector implements the MetricsCollector port on a dedicated registry
type PrometheusMetricsCollector struct {
	registry *prometheus.Registry

	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheHitRatio      prometheus.Gauge
	weatherCalls       *prometheus.CounterVec
	geocodeCalls       *prometheus.CounterVec
	recommendations    prometheus.Counter
	plantsScored       prometheus.Histogram
	incompleteReadings prometheus.Counter

	mu     sync.Mutex
	hits   int64
	misses int64
}

// NewPrometheusMetricsCollector registers all application metrics on registry.
// A nil registry gets a fresh one with the Go and process collectors attached.
func NewPrometheusMetricsCollector(registry *prometheus.Registry) *PrometheusMetricsCollector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &PrometheusMetricsCollector{
		registry: registry,
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "The total number of cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "The total number of cache misses",
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hit_ratio",
			Help:      "Cache hit ratio (hits/total lookups)",
		}),
		weatherCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "weather_api_calls_total",
			Help:      "Weather provider calls by provider and outcome",
		}, []string{"provider", "success"}),
		geocodeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "geocode_calls_total",
			Help:      "Reverse geocoding calls by outcome",
		}, []string{"success"}),
		recommendations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "recommendations_total",
			Help:      "The total number of planting recommendations served",
		}),
		plantsScored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "recommendation_plants_scored",
			Help:      "Number of plants scored per recommendation",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		incompleteReadings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forecast_incomplete_readings_total",
			Help:      "Forecast readings skipped by the scorer for missing temperature or humidity",
		}),
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.cacheHitRatio,
		m.weatherCalls,
		m.geocodeCalls,
		m.recommendations,
		m.plantsScored,
		m.incompleteReadings,
	)

	return m
}

func (m *PrometheusMetricsCollector) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
	m.updateHitRatio()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.cacheMisses.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
	m.updateHitRatio()
}

// updateHitRatio must be called while holding the mutex
func (m *PrometheusMetricsCollector) updateHitRatio() {
	if total := m.hits + m.misses; total > 0 {
		m.cacheHitRatio.Set(float64(m.hits) / float64(total))
	}
}

func (m *PrometheusMetricsCollector) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.weatherCalls.WithLabelValues(provider, strconv.FormatBool(success)).Inc()
}

func (m *PrometheusMetricsCollector) RecordGeocodeCall(ctx context.Context, success bool) {
	m.geocodeCalls.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *PrometheusMetricsCollector) RecordRecommendation(ctx context.Context, plants int, incompleteReadings int) {
	m.recommendations.Inc()
	m.plantsScored.Observe(float64(plants))
	m.incompleteReadings.Add(float64(incompleteReadings))
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// MetricsSummaryAdapter builds the JSON metrics summary served at /api/metrics
type MetricsSummaryAdapter struct {
	weatherMetrics ports.WeatherMetrics
	startedAt      time.Time
}

// MetricsSummaryConfig holds configuration for creating the summary adapter
type MetricsSummaryConfig struct {
	WeatherMetrics ports.WeatherMetrics
	StartedAt      time.Time
}

// NewMetricsSummaryAdapter creates a new metrics summary adapter
func NewMetricsSummaryAdapter(config MetricsSummaryConfig) *MetricsSummaryAdapter {
	startedAt := config.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	return &MetricsSummaryAdapter{
		weatherMetrics: config.WeatherMetrics,
		startedAt:      startedAt,
	}
}

// GetMetrics returns aggregated provider and cache metrics
func (m *MetricsSummaryAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := map[string]interface{}{
		"weather":        m.weatherMetrics.GetProviderInfo(),
		"uptime_seconds": int64(time.Since(m.startedAt).Seconds()),
	}

	cacheStats, err := m.weatherMetrics.GetCacheMetrics()
	if err != nil {
		return nil, err
	}
	metrics["cache"] = map[string]interface{}{
		"hits":      cacheStats.Hits,
		"misses":    cacheStats.Misses,
		"total_ops": cacheStats.TotalOps,
		"hit_ratio": cacheStats.HitRatio,
		"updated":   cacheStats.LastUpdated,
	}

	return metrics, nil
}
