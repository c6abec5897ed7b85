// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The numerical packages never log; the service layer logs requests,
// evaluation failures and lifecycle events through this package.
//
// Example Usage:
//
//	logger := logging.FromConfig(cfg.Logging)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Warn("Evaluation failed", logging.EvaluationFields("P", 5, 3, ev)...)
package logging
