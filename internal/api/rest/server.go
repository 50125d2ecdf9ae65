package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configures the echo instance of one service.
type Options struct {
	Service     string
	LogLevel    string
	CORSOrigins []string
	BodyLimit   string
}

// NewServer builds an echo instance with the middleware every service shares
// and registers /healthz and /metrics.
func NewServer(opts Options) (*echo.Echo, *Metrics) {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())

	SetLevel(e, opts.LogLevel)
	e.HTTPErrorHandler = errorHandler

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	limit := opts.BodyLimit
	if limit == "" {
		limit = "10M"
	}

	metrics := NewMetrics(opts.Service)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(LogHandlerFunc)
	e.Use(metrics.Middleware)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(limit))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", metrics.Handler())

	return e, metrics
}

// Run serves until stop is done, then shuts down within grace.
func Run(e *echo.Echo, addr string, grace time.Duration, stop context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop.Done():
		e.Logger.Infof("shutting down: %v", context.Cause(stop))
	}

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
