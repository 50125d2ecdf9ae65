package rest

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
)

// WeatherHandler serves current weather behind HTTP Basic auth.
type WeatherHandler struct {
	weather  *app.WeatherService
	username string
	password string
}

func NewWeatherHandler(weather *app.WeatherService, username, password string) *WeatherHandler {
	return &WeatherHandler{
		weather:  weather,
		username: username,
		password: password,
	}
}

// Register adds /weather and /token-count, both requiring credentials.
func (h *WeatherHandler) Register(e *echo.Echo) {
	auth := middleware.BasicAuth(h.authorize)
	e.GET("/weather", h.Weather, auth)
	e.GET("/token-count", h.TokenCount, auth)
}

func (h *WeatherHandler) authorize(username, password string, c echo.Context) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.password)) == 1
	return userOK && passOK, nil
}

// Weather answers the current weather at lat/lon.
func (h *WeatherHandler) Weather(c echo.Context) error {
	var lat, lon float64
	if err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &lat).
		MustFloat64("lon", &lon).
		BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf("%s: %v", be.Field, be.Message))
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	report, err := h.weather.Current(c.Request().Context(), lat, lon)
	if err != nil {
		var verr *entity.ValidationError
		switch {
		case errors.As(err, &verr):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
		case errors.Is(err, entity.ErrUpstream):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Weather service unavailable").SetInternal(err)
		case errors.Is(err, entity.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Weather data not found.")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected error occurred").SetInternal(err)
		}
	}
	return c.JSON(http.StatusOK, report)
}

type TokenCountResponse struct {
	CallCount int64 `json:"call_count"`
}

// TokenCount answers the number of accepted weather calls.
func (h *WeatherHandler) TokenCount(c echo.Context) error {
	return c.JSON(http.StatusOK, TokenCountResponse{CallCount: h.weather.CallCount()})
}
