package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "CORS_ORIGINS", "MODELS_DIR", "WATCH_MODELS", "WEATHER_TIMEOUT", "SHUTDOWN_GRACE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.False(t, cfg.WatchModels)
	require.Equal(t, 10*time.Second, cfg.WeatherTimeout)
	require.Equal(t, filepath.Join("models", "plant_gate.yaml"), cfg.Manifest("plant_gate.yaml"))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WATCH_MODELS", "true")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("API_USERNAME", "agri")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.True(t, cfg.WatchModels)
	require.Equal(t, 3*time.Second, cfg.WeatherTimeout)
	require.Equal(t, "agri", cfg.APIUsername)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("WATCH_MODELS", "sometimes")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("WATCH_MODELS", "")
	t.Setenv("WEATHER_TIMEOUT", "ten")
	_, err = Load()
	require.Error(t, err)
}
