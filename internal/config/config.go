// Package config loads the catalog client and stub server settings from the
// environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/themilho/product-catalog/pkg/config"
	"github.com/themilho/product-catalog/pkg/tracing"
)

// Config holds all configuration for the catalog binary.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFile receives the logs while the terminal UI owns the screen.
	LogFile string `env:"CATALOG_LOG_FILE" envDefault:"catalog.log"`

	// Remote catalog API
	APIURL         string        `env:"CATALOG_API_URL" envDefault:"http://localhost:3002"`
	HTTPTimeout    time.Duration `env:"CATALOG_HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries int           `env:"CATALOG_HTTP_MAX_RETRIES" envDefault:"0"`
	BreakerEnabled bool          `env:"CATALOG_BREAKER_ENABLED" envDefault:"true"`

	// Circuit breaker
	CBMaxRequests  uint32        `env:"CATALOG_CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     time.Duration `env:"CATALOG_CB_INTERVAL" envDefault:"60s"`
	CBTimeout      time.Duration `env:"CATALOG_CB_TIMEOUT" envDefault:"30s"`
	CBFailureRatio float64       `env:"CATALOG_CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32        `env:"CATALOG_CB_MIN_REQUESTS" envDefault:"5"`

	NotifyDuration time.Duration `env:"CATALOG_NOTIFY_DURATION" envDefault:"3s"`

	Stub    StubConfig
	Tracing tracing.Config
}

// StubConfig configures the in-memory catalog API server.
type StubConfig struct {
	HTTPPort int    `env:"STUB_HTTP_PORT" envDefault:"3002"`
	SeedFile string `env:"STUB_SEED_FILE"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom is Load over an explicit key/value set.
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := config.LoadFrom(cfg, environment); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid CATALOG_API_URL: %q", c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("CATALOG_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	if c.HTTPMaxRetries < 0 {
		return fmt.Errorf("CATALOG_HTTP_MAX_RETRIES must not be negative, got %d", c.HTTPMaxRetries)
	}
	if c.CBFailureRatio <= 0 || c.CBFailureRatio > 1.0 {
		return fmt.Errorf("CATALOG_CB_FAILURE_RATIO must be in (0.0, 1.0], got %f", c.CBFailureRatio)
	}
	if c.Stub.HTTPPort < 1 || c.Stub.HTTPPort > 65535 {
		return fmt.Errorf("invalid STUB_HTTP_PORT: %d", c.Stub.HTTPPort)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.Tracing.SampleRate)
	}
	return nil
}
