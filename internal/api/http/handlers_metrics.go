package http

import (
	"time"

	"github.com/GriffinCanCode/incgamma/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper. metrics may be nil.
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackCatalogOperation times a read of the service catalog
func (hm *HandlerMetrics) TrackCatalogOperation(operation string) func(status string) {
	start := time.Now()
	return func(status string) {
		if hm == nil || hm.metrics == nil {
			return
		}
		hm.metrics.RecordServiceCall("service_registry", operation, status, time.Since(start))
	}
}
