package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration
type Config struct {
	Port          int
	SweepInterval time.Duration
	StaticDir     string
	SeedDemo      bool
}

// Load reads configuration from the environment. A local .env.local overrides
// .env; both are optional. Unset keys fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	cfg := &Config{
		Port:          3000,
		SweepInterval: 30 * time.Second,
		StaticDir:     "web",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SWEEP_INTERVAL %q: %w", v, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("SWEEP_INTERVAL must be positive, got %q", v)
		}
		cfg.SweepInterval = interval
	}

	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}

	if v := os.Getenv("SEED_DEMO"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DEMO %q: %w", v, err)
		}
		cfg.SeedDemo = seed
	}

	return cfg, nil
}
