package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/incgamma/internal/id"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key holding the request ID.
	RequestIDKey = "request_id"
)

// RequestID tags each request with a ULID. A valid inbound X-Request-ID is
// kept so callers can correlate retries.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" || !id.IsValid(reqID) {
			reqID = id.NewRequestID().String()
		}

		c.Set(RequestIDKey, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
