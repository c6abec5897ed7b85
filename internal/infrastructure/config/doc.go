// Package config provides 12-factor configuration management for the incgamma service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Engine: Convergence limits for the incomplete gamma evaluator
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	ev := cfg.Engine.Evaluator()
//
// Environment Variables:
//   - PORT, HOST
//   - GAMMA_EPSILON, GAMMA_MAX_ITERATIONS
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
