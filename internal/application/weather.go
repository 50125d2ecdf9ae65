package app

import (
	"context"
	"sync/atomic"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// WeatherService reshapes upstream weather and counts served calls.
type WeatherService struct {
	provider port.WeatherProvider
	calls    atomic.Int64
}

func NewWeatherService(provider port.WeatherProvider) *WeatherService {
	return &WeatherService{provider: provider}
}

// Current validates coordinates, bumps the call counter once and queries the provider.
func (s *WeatherService) Current(ctx context.Context, lat, lon float64) (*entity.WeatherReport, error) {
	if !within(lat, -90, 90) {
		return nil, &entity.ValidationError{Field: "lat", Reason: "must be within [-90, 90]"}
	}
	if !within(lon, -180, 180) {
		return nil, &entity.ValidationError{Field: "lon", Reason: "must be within [-180, 180]"}
	}

	count := s.calls.Add(1)

	w, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	return &entity.WeatherReport{
		Latitude:         w.Latitude,
		Longitude:        w.Longitude,
		Time:             w.Time,
		Temperature:      w.Temperature,
		WindSpeed:        w.WindSpeed,
		WindDirection:    w.WindDirection,
		Condition:        entity.WeatherCondition(w.WeatherCode),
		IsDay:            w.IsDay,
		RelativeHumidity: w.RelativeHumidity,
		SurfacePressure:  w.SurfacePressure,
		CloudCover:       w.CloudCover,
		CallCount:        count,
	}, nil
}

// within is false for NaN.
func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// CallCount is the number of accepted weather calls since startup.
func (s *WeatherService) CallCount() int64 {
	return s.calls.Load()
}
