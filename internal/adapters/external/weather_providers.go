// Package external provides adapters for external services
// These adapters implement ports for weather providers, geocoding, caching and password hashing.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// getJSON performs a GET request and decodes a JSON body into target.
// A 404 from upstream maps to a NotFoundError, any other non-200 to an ExternalAPIError.
func getJSON(ctx context.Context, client HTTPClient, logger ports.Logger, service, endpoint string, header http.Header, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("failed to build %s request", service), err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("failed to call %s", service), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && logger != nil {
			logger.Warn("Failed to close response body", ports.F("service", service), ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return errors.NewNotFoundError(fmt.Sprintf("%s has no data for this location", service))
		}
		return errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", service, resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("failed to decode %s response", service), err)
	}
	return nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WeatherAPIProviderAdapter implements WeatherProvider port for WeatherAPI.com
type WeatherAPIProviderAdapter struct {
	apiKey       string
	baseURL      string
	forecastDays int
	client       HTTPClient
	logger       ports.Logger
}

// WeatherAPIProviderParams holds parameters for creating WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey       string
	BaseURL      string
	ForecastDays int
	Timeout      time.Duration
	Client       HTTPClient
	Logger       ports.Logger
}

type weatherAPICondition struct {
	Text string `json:"text"`
}

type weatherAPILocation struct {
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// WeatherAPICurrentResponse represents the current.json response from WeatherAPI.com
type WeatherAPICurrentResponse struct {
	Location weatherAPILocation `json:"location"`
	Current  struct {
		TempC     *float64            `json:"temp_c"`
		Humidity  *float64            `json:"humidity"`
		Condition weatherAPICondition `json:"condition"`
	} `json:"current"`
}

// WeatherAPIForecastResponse represents the forecast.json response from WeatherAPI.com
type WeatherAPIForecastResponse struct {
	Location weatherAPILocation `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64               `json:"time_epoch"`
				TempC     *float64            `json:"temp_c"`
				Humidity  *float64            `json:"humidity"`
				Condition weatherAPICondition `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// hourly samples are thinned to the three-hour cadence used by the recommendation window
const weatherAPISampleStepHours = 3

// NewWeatherAPIProviderAdapter creates a new WeatherAPI provider adapter
func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) ports.WeatherProvider {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	days := params.ForecastDays
	if days <= 0 {
		days = 5
	}

	return &WeatherAPIProviderAdapter{
		apiKey:       params.APIKey,
		baseURL:      baseURL,
		forecastDays: days,
		client:       httpClientOrDefault(params.Client, params.Timeout),
		logger:       params.Logger,
	}
}

// GetCurrentWeather retrieves weather data from WeatherAPI.com
func (p *WeatherAPIProviderAdapter) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", formatCoordinate(lat)+","+formatCoordinate(lon))

	var apiResp WeatherAPICurrentResponse
	if err := getJSON(ctx, p.client, p.logger, "WeatherAPI", p.baseURL+"/current.json?"+query.Encode(), nil, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Current.TempC == nil || apiResp.Current.Humidity == nil {
		return nil, errors.NewExternalAPIError("invalid current weather payload: missing temperature or humidity", nil)
	}

	return &ports.WeatherData{
		Temperature: *apiResp.Current.TempC,
		Humidity:    *apiResp.Current.Humidity,
		Description: apiResp.Current.Condition.Text,
		Location:    joinNonEmpty(apiResp.Location.Name, apiResp.Location.Region, apiResp.Location.Country),
		Latitude:    lat,
		Longitude:   lon,
		Timestamp:   time.Now(),
	}, nil
}

// GetForecast retrieves the hourly forecast and keeps every third hour
func (p *WeatherAPIProviderAdapter) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", formatCoordinate(lat)+","+formatCoordinate(lon))
	query.Set("days", strconv.Itoa(p.forecastDays))

	var apiResp WeatherAPIForecastResponse
	if err := getJSON(ctx, p.client, p.logger, "WeatherAPI", p.baseURL+"/forecast.json?"+query.Encode(), nil, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.Forecast.ForecastDay == nil {
		return nil, errors.NewExternalAPIError("invalid forecast payload", nil)
	}

	readings := []ports.ReadingData{}
	for _, day := range apiResp.Forecast.ForecastDay {
		for i, hour := range day.Hour {
			if i%weatherAPISampleStepHours != 0 {
				continue
			}
			readings = append(readings, ports.ReadingData{
				Time:        time.Unix(hour.TimeEpoch, 0).UTC(),
				Temperature: hour.TempC,
				Humidity:    hour.Humidity,
				Description: hour.Condition.Text,
			})
		}
	}

	return &ports.ForecastData{
		Latitude:  lat,
		Longitude: lon,
		Readings:  readings,
		Provider:  p.GetProviderName(),
		FetchedAt: time.Now(),
	}, nil
}

// GetProviderName returns the name of this weather provider
func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return "weatherapi"
}

func httpClientOrDefault(client HTTPClient, timeout time.Duration) HTTPClient {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += part
	}
	return out
}
