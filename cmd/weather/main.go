package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"

	"agriassure/config"
	"agriassure/internal/api/rest"
	"agriassure/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.APIUsername == "" || cfg.APIPassword == "" {
		log.Fatal("API_USERNAME and API_PASSWORD are required")
	}

	loader := container.NewLoader(cfg, nil)
	loader.Weather()
	c := loader.Build()

	e, metrics := rest.NewServer(rest.Options{
		Service:     "weather",
		LogLevel:    cfg.LogLevel,
		CORSOrigins: cfg.CORSOrigins,
	})
	metrics.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "weather_calls_served",
		Help: "Weather calls accepted since startup",
	}, func() float64 {
		return float64(c.Weather.CallCount())
	}))
	rest.NewWeatherHandler(c.Weather, cfg.APIUsername, cfg.APIPassword).Register(e)

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rest.Run(e, ":"+cfg.Port, cfg.ShutdownGrace, stop); err != nil {
		log.Errorf("server error: %v", err)
	}
}
