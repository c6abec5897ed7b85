// Package http provides the HTTP handlers for the incgamma REST API.
//
// Endpoints:
//   - Health: /health
//   - Services: /services, /services/:id, /services/execute
//
// Tool failures (undefined inputs, convergence errors) are reported as
// {"success": false, "error": ...} with status 200, matching what the
// provider returns. Transport problems map to 4xx/5xx.
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, evaluator, http.NewHandlerMetrics(metrics))
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http
