package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by every service binary.
type Config struct {
	Port          string
	LogLevel      string
	CORSOrigins   []string
	OnnxLibrary   string
	ModelsDir     string
	WatchModels   bool
	ShutdownGrace time.Duration

	WeatherBaseURL string
	WeatherTimeout time.Duration
	APIUsername    string
	APIPassword    string

	TelegramToken string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getOrDefault("PORT", "8080"),
		LogLevel:       getOrDefault("LOG_LEVEL", "info"),
		CORSOrigins:    splitList(getOrDefault("CORS_ORIGINS", "*")),
		OnnxLibrary:    os.Getenv("ONNXRUNTIME_LIB"),
		ModelsDir:      getOrDefault("MODELS_DIR", "models"),
		WeatherBaseURL: os.Getenv("WEATHER_BASE_URL"),
		APIUsername:    os.Getenv("API_USERNAME"),
		APIPassword:    os.Getenv("API_PASSWORD"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.WatchModels, err = parseBool("WATCH_MODELS", false); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = parseDuration("WEATHER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownGrace, err = parseDuration("SHUTDOWN_GRACE", 15*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Manifest returns the path of a model manifest inside ModelsDir.
func (c *Config) Manifest(name string) string {
	return filepath.Join(c.ModelsDir, name)
}

func getOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
