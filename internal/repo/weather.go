package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wildfirestack/wildfire-engine/internal/models"
)

const placeholderWeatherKey = "YOUR_OPENWEATHER_API_KEY_HERE"

// WeatherClient queries the OpenWeather current-conditions endpoint for a
// region and normalises the response into the shared data model.
type WeatherClient struct {
	baseURL     string
	apiKey      string
	countryCode string
	httpClient  *http.Client
}

// NewWeatherClient constructs an OpenWeather client.
func NewWeatherClient(baseURL, apiKey, countryCode string, timeout time.Duration) *WeatherClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if countryCode == "" {
		countryCode = "IN"
	}
	return &WeatherClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Fetch returns the current weather for region. Wind speed arrives in m/s
// and is converted to km/h; rainfall defaults to zero when the provider
// omits it. NDVI is derived with the 0.5 + temp/100 heuristic kept verbatim
// for compatibility with the trained classifier's feature distribution.
func (c *WeatherClient) Fetch(ctx context.Context, region string) (models.WeatherSample, error) {
	const op = "openweather.fetch"
	if c == nil || c.baseURL == "" {
		return models.WeatherSample{}, unavailable(op)
	}
	if c.apiKey == "" || c.apiKey == placeholderWeatherKey {
		return models.WeatherSample{}, unavailable(op)
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s,%s", region, c.countryCode))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	endpoint := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.WeatherSample{}, transport(op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherSample{}, transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherSample{}, badResponse(op, fmt.Errorf("openweather returned %s", resp.Status))
	}

	var payload struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherSample{}, badResponse(op, fmt.Errorf("decode response: %w", err))
	}

	return models.WeatherSample{
		Temperature:  payload.Main.Temp,
		Humidity:     payload.Main.Humidity,
		WindSpeedKmh: payload.Wind.Speed * 3.6,
		RainfallMm:   payload.Rain.OneHour,
		NDVI:         math.Round((0.5+payload.Main.Temp/100)*100) / 100,
	}, nil
}
