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

	// HTTP API configuration
	ListenAddr string

	// Pool defaults, used to seed the persisted pool configuration on first
	// start. Runtime changes go through the admin update-config operation.
	AdminID              string
	DistributorID        string
	RoundDurationSeconds int64
	PlatformFeeBps       int64 // basis points of the house remainder

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
		ListenAddr:  os.Getenv("LISTEN_ADDR"),

		AdminID:       os.Getenv("ADMIN_ID"),
		DistributorID: os.Getenv("DISTRIBUTOR_ID"),

		// Defaults: two minute rounds, 2.5% platform fee
		RoundDurationSeconds: 120,
		PlatformFeeBps:       250,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	if duration := os.Getenv("ROUND_DURATION_SECONDS"); duration != "" {
		parsed, err := strconv.ParseInt(duration, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid ROUND_DURATION_SECONDS: %q", duration)
		}
		config.RoundDurationSeconds = parsed
	}
	if fee := os.Getenv("PLATFORM_FEE_BPS"); fee != "" {
		parsed, err := strconv.ParseInt(fee, 10, 64)
		if err != nil || parsed < 0 || parsed > 10000 {
			return nil, fmt.Errorf("PLATFORM_FEE_BPS must be an integer in [0, 10000], got %q", fee)
		}
		config.PlatformFeeBps = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.AdminID == "" {
			return nil, fmt.Errorf("ADMIN_ID is required")
		}
		if config.DistributorID == "" {
			return nil, fmt.Errorf("DISTRIBUTOR_ID is required")
		}
	}

	return config, nil
}
