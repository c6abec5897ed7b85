/*
Package monitoring provides Prometheus metrics for the incgamma service.

# Overview

Metrics live in a dedicated registry so several servers (and tests) can run
in one process. The collector tracks HTTP traffic, service calls and every
incomplete gamma evaluation: which function ran, which expansion the engine
chose, how it ended and how many terms it consumed.

# Usage

	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Feed engine evaluations from the math provider
	provider := mathProvider.NewProvider(ev, metrics, logger)

	// Time service calls
	timer := monitoring.NewTimer(metrics, "math", "math.gamma.p")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
