// Package middleware provides the HTTP middleware for the incgamma API.
//
// Middleware stack includes:
//   - RequestID: ULID request IDs echoed in X-Request-ID
//   - AccessLog: one zap line per request
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.AccessLog(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
