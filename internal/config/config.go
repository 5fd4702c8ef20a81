package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment once at
// startup.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// Remote query engine. When QueryEngineURL is empty the service falls
	// back to a local SQLite engine at LocalDataPath.
	QueryEngineURL      string `env:"QUERY_ENGINE_URL"`
	QueryDatabase       string `env:"QUERY_DATABASE" envDefault:"slippi"`
	QueryOutputLocation string `env:"QUERY_OUTPUT_LOCATION"`
	LocalDataPath       string `env:"LOCAL_DATA_PATH"`

	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"2m"`

	CachePath string `env:"CACHE_PATH" envDefault:"./data/replay-cache"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.QueryEngineURL == "" && cfg.LocalDataPath == "" {
		return Config{}, fmt.Errorf("either QUERY_ENGINE_URL or LOCAL_DATA_PATH must be set")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if cfg.QueryTimeout <= 0 {
		return Config{}, fmt.Errorf("QUERY_TIMEOUT must be positive")
	}
	return cfg, nil
}
