package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries all process configuration. It is built once in main
// and passed down explicitly; nothing reads the environment after startup.
type AppConfig struct {
	// APIBaseURL is the root of the upstream COVID API.
	APIBaseURL string

	// HTTPTimeout bounds each outbound API call.
	HTTPTimeout time.Duration

	// FetchInterval controls how often the scheduler refreshes data.
	FetchInterval time.Duration

	// CacheMaxAge is both the cache TTL and the time-bucket size for
	// cache keys.
	CacheMaxAge time.Duration

	Port     string
	LogLevel string
}

// Load reads configuration from environment with sensible defaults. A
// missing .env file is fine; explicit environment variables win.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.APIBaseURL = getenvDefault("COVID_API_BASE_URL", "https://disease.sh/v3/covid-19")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("FETCH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.FetchInterval = interval

	maxAge, err := getenvDuration("CACHE_MAX_AGE", "10m")
	if err != nil {
		return nil, err
	}
	cfg.CacheMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
