// Package config provides configuration settings for the link shortener service.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the application.
type Config struct {
	ServerAddress    string        `env:"SERVER_ADDRESS"     env-default:":3000"`
	BaseURL          string        `env:"BASE_URL"           env-default:"http://localhost:3000"`
	RateLimit        int           `env:"RATE_LIMIT"         env-default:"10"`
	RatePeriod       time.Duration `env:"RATE_PERIOD"        env-default:"1s"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT"    env-default:"5s"`
	StorageCapacity  int           `env:"STORAGE_CAPACITY"   env-default:"1000000"`
	DisableRateLimit bool          `env:"DISABLE_RATE_LIMIT" env-default:"false"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerAddress:    ":3000",
		BaseURL:          "http://localhost:3000",
		RateLimit:        10,
		RatePeriod:       time.Second,
		RequestTimeout:   5 * time.Second,
		StorageCapacity:  1000000,
		DisableRateLimit: false,
	}
}

// Load reads an optional .env file, then decodes the environment into a Config.
// Unset variables take the defaults in the struct tags, which match DefaultConfig.
//
//	SERVER_ADDRESS      listen address, e.g. ":3000"
//	BASE_URL            prefix for short URLs
//	RATE_LIMIT          requests per RATE_PERIOD per client
//	RATE_PERIOD         Go duration, e.g. "1s"
//	REQUEST_TIMEOUT     Go duration
//	STORAGE_CAPACITY    maximum stored links
//	DISABLE_RATE_LIMIT  boolean
func Load(files ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RatePeriod <= 0 {
		return fmt.Errorf("RATE_PERIOD must be positive, got %s", c.RatePeriod)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
