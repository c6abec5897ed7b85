package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// DefaultServiceMaxIterations bounds a single evaluation served over HTTP.
const DefaultServiceMaxIterations = 10000000

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// EngineConfig holds the evaluator convergence limits.
type EngineConfig struct {
	Epsilon       float64 `envconfig:"GAMMA_EPSILON" default:"1e-15"`
	MaxIterations int     `envconfig:"GAMMA_MAX_ITERATIONS" default:"10000000"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Evaluator builds a gamma evaluator from the engine limits.
func (e EngineConfig) Evaluator() gamma.Evaluator {
	return gamma.Default().WithLimits(e.Epsilon, e.MaxIterations)
}

// Validate rejects limits the evaluator cannot work with.
func (e EngineConfig) Validate() error {
	if !(e.Epsilon > 0) {
		return fmt.Errorf("GAMMA_EPSILON must be positive, got %v", e.Epsilon)
	}
	if e.MaxIterations < 0 {
		return fmt.Errorf("GAMMA_MAX_ITERATIONS must be non-negative, got %d", e.MaxIterations)
	}
	return nil
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Engine: EngineConfig{
			Epsilon:       gamma.DefaultEpsilon,
			MaxIterations: DefaultServiceMaxIterations,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
