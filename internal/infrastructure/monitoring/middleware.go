package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(c.Request.Method, path, status, time.Since(start))
	}
}

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	service string
	tool    string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, service, tool string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		service: service,
		tool:    tool,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) {
	t.metrics.RecordServiceCall(t.service, t.tool, status, time.Since(t.start))
}
