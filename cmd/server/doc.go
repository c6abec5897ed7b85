// Package main is the entry point for the incgamma HTTP server.
//
// The server exposes the regularized incomplete gamma functions P(a,x) and
// Q(a,x), log-gamma and the gamma-family distribution functions as tools of
// the "math" service.
//
// Configuration:
//   - Environment variables (PORT, HOST, GAMMA_EPSILON, GAMMA_MAX_ITERATIONS,
//     LOG_LEVEL, LOG_DEV, RATE_LIMIT_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -max-iterations 1000000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
