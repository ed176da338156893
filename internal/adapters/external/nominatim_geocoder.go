package external

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// NominatimGeocoderAdapter implements Geocoder using the OpenStreetMap Nominatim reverse API.
// Requests are throttled to the configured rate as the public instance's usage policy requires.
type NominatimGeocoderAdapter struct {
	baseURL   string
	userAgent string
	client    HTTPClient
	limiter   *rate.Limiter
	logger    ports.Logger
	metrics   ports.MetricsCollector
}

// NominatimGeocoderParams holds parameters for creating the Nominatim geocoder
type NominatimGeocoderParams struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
	Client            HTTPClient
	Logger            ports.Logger
	Metrics           ports.MetricsCollector
}

// NominatimReverseResponse represents the jsonv1 reverse response
type NominatimReverseResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// NewNominatimGeocoderAdapter creates a new Nominatim geocoder
func NewNominatimGeocoderAdapter(params NominatimGeocoderParams) *NominatimGeocoderAdapter {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	rps := params.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &NominatimGeocoderAdapter{
		baseURL:   baseURL,
		userAgent: params.UserAgent,
		client:    httpClientOrDefault(params.Client, params.Timeout),
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    params.Logger,
		metrics:   params.Metrics,
	}
}

// ReverseGeocode resolves coordinates to a display name
func (g *NominatimGeocoderAdapter) ReverseGeocode(ctx context.Context, lat, lon float64) (*ports.PlaceData, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, errors.NewExternalAPIError("geocoding request cancelled", err)
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", formatCoordinate(lat))
	query.Set("lon", formatCoordinate(lon))

	header := http.Header{}
	header.Set("User-Agent", g.userAgent)
	header.Set("Accept-Language", "en")

	var apiResp NominatimReverseResponse
	err := getJSON(ctx, g.client, g.logger, "Nominatim", g.baseURL+"/reverse?"+query.Encode(), header, &apiResp)
	g.record(ctx, err == nil || errors.IsNotFoundError(err))
	if err != nil {
		return nil, err
	}

	if apiResp.Error != "" || strings.TrimSpace(apiResp.DisplayName) == "" {
		return nil, errors.NewNotFoundError("no place found for these coordinates")
	}

	place := &ports.PlaceData{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: apiResp.DisplayName,
	}
	if parsed, err := strconv.ParseFloat(apiResp.Lat, 64); err == nil {
		place.Latitude = parsed
	}
	if parsed, err := strconv.ParseFloat(apiResp.Lon, 64); err == nil {
		place.Longitude = parsed
	}
	return place, nil
}

func (g *NominatimGeocoderAdapter) record(ctx context.Context, success bool) {
	if g.metrics != nil {
		g.metrics.RecordGeocodeCall(ctx, success)
	}
}

// GetProviderName returns the name of this geocoder
func (g *NominatimGeocoderAdapter) GetProviderName() string {
	return "nominatim"
}
