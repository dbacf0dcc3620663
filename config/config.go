package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Ledger configuration
	StartingCredits int64

	// When true, players without an authoritative stat line get a simulated
	// one at settlement time instead of counting zero.
	SimulateMissingStats bool

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		StartingCredits:      1000,
		SimulateMissingStats: true,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if credits := os.Getenv("STARTING_CREDITS"); credits != "" {
		if parsed, err := strconv.ParseInt(credits, 10, 64); err == nil {
			config.StartingCredits = parsed
		}
	}
	if simulate := os.Getenv("SIMULATE_MISSING_STATS"); simulate != "" {
		config.SimulateMissingStats = simulate == "true"
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
