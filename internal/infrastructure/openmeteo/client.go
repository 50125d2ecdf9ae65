package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client reads current weather from the Open-Meteo forecast API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type forecast struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CurrentWeather *struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
		IsDay         int     `json:"is_day"`
	} `json:"current_weather"`
	Hourly struct {
		Time             []string  `json:"time"`
		RelativeHumidity []float64 `json:"relativehumidity_2m"`
		SurfacePressure  []float64 `json:"surface_pressure"`
		CloudCover       []float64 `json:"cloudcover"`
	} `json:"hourly"`
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (*entity.CurrentWeather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", "relativehumidity_2m,surface_pressure,cloudcover")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstream, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream status %d", entity.ErrUpstream, res.StatusCode)
	}

	var f forecast
	if err := json.NewDecoder(res.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	if f.CurrentWeather == nil {
		return nil, entity.ErrNotFound
	}
	cur := f.CurrentWeather

	i, err := hourIndex(f.Hourly.Time, cur.Time)
	if err != nil {
		return nil, err
	}
	if i >= len(f.Hourly.RelativeHumidity) || i >= len(f.Hourly.SurfacePressure) || i >= len(f.Hourly.CloudCover) {
		return nil, fmt.Errorf("hourly series shorter than time axis at %d", i)
	}

	return &entity.CurrentWeather{
		Latitude:         f.Latitude,
		Longitude:        f.Longitude,
		Time:             cur.Time,
		Temperature:      cur.Temperature,
		WindSpeed:        cur.WindSpeed,
		WindDirection:    cur.WindDirection,
		WeatherCode:      cur.WeatherCode,
		IsDay:            cur.IsDay != 0,
		RelativeHumidity: int(f.Hourly.RelativeHumidity[i]),
		SurfacePressure:  f.Hourly.SurfacePressure[i],
		CloudCover:       int(f.Hourly.CloudCover[i]),
	}, nil
}

// hourIndex finds the hourly slot of the hour the current reading falls into,
// e.g. "2025-06-01T12:45" matches "2025-06-01T12:00".
func hourIndex(times []string, current string) (int, error) {
	hour := current
	if i := strings.LastIndex(current, ":"); i >= 0 {
		hour = current[:i]
	}
	hour += ":00"
	for i, t := range times {
		if t == hour {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no hourly data for %s", hour)
}

var _ port.WeatherProvider = (*Client)(nil)
