package port

import (
	"context"

	"agriassure/internal/domain/entity"
)

// WeatherProvider fetches current conditions from a third-party service.
type WeatherProvider interface {
	// Current returns entity.ErrUpstream or entity.ErrNotFound wrapped on failure
	Current(ctx context.Context, lat, lon float64) (*entity.CurrentWeather, error)
}
