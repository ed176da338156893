package external

import (
	"context"
	"net/url"
	"time"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

type openWeatherMapMain struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type openWeatherMapCondition struct {
	Description string `json:"description"`
}

// OpenWeatherMapResponse represents the /weather response from OpenWeatherMap API
type OpenWeatherMapResponse struct {
	Name    string                    `json:"name"`
	Main    openWeatherMapMain        `json:"main"`
	Weather []openWeatherMapCondition `json:"weather"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// OpenWeatherMapForecastResponse represents the 5 day / 3 hour /forecast response
type OpenWeatherMapForecastResponse struct {
	List []struct {
		Dt      int64                     `json:"dt"`
		Main    *openWeatherMapMain       `json:"main"`
		Weather []openWeatherMapCondition `json:"weather"`
	} `json:"list"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) ports.WeatherProvider {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  httpClientOrDefault(params.Client, params.Timeout),
		logger:  params.Logger,
	}
}

func (p *OpenWeatherMapProviderAdapter) query(lat, lon float64) string {
	query := url.Values{}
	query.Set("lat", formatCoordinate(lat))
	query.Set("lon", formatCoordinate(lon))
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")
	return query.Encode()
}

// GetCurrentWeather retrieves weather data from OpenWeatherMap
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, lat, lon float64) (*ports.WeatherData, error) {
	var apiResp OpenWeatherMapResponse
	if err := getJSON(ctx, p.client, p.logger, "OpenWeatherMap", p.baseURL+"/weather?"+p.query(lat, lon), nil, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Main.Temp == nil || apiResp.Main.Humidity == nil {
		return nil, errors.NewExternalAPIError("invalid current weather payload: missing temperature or humidity", nil)
	}

	description := "Clear"
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
	}

	data := &ports.WeatherData{
		Description: description,
		Location:    joinNonEmpty(apiResp.Name, apiResp.Sys.Country),
		Latitude:    lat,
		Longitude:   lon,
		Temperature: *apiResp.Main.Temp,
		Humidity:    *apiResp.Main.Humidity,
		Timestamp:   time.Now(),
	}
	return data, nil
}

// GetForecast retrieves the three-hourly forecast from OpenWeatherMap.
// Entries without a main block are kept as readings with no measurements.
// A body without a list is rejected; an empty list is a valid forecast.
func (p *OpenWeatherMapProviderAdapter) GetForecast(ctx context.Context, lat, lon float64) (*ports.ForecastData, error) {
	var apiResp OpenWeatherMapForecastResponse
	if err := getJSON(ctx, p.client, p.logger, "OpenWeatherMap", p.baseURL+"/forecast?"+p.query(lat, lon), nil, &apiResp); err != nil {
		return nil, err
	}
	if apiResp.List == nil {
		return nil, errors.NewExternalAPIError("invalid forecast payload", nil)
	}

	readings := make([]ports.ReadingData, 0, len(apiResp.List))
	for _, item := range apiResp.List {
		reading := ports.ReadingData{Time: time.Unix(item.Dt, 0).UTC()}
		if item.Main != nil {
			reading.Temperature = item.Main.Temp
			reading.Humidity = item.Main.Humidity
		}
		if len(item.Weather) > 0 {
			reading.Description = item.Weather[0].Description
		}
		readings = append(readings, reading)
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
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}
