package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harentsoaR/dentist-booking-web/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger emits structured logs for every HTTP request.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		logger.Info("request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", reqID,
			"remote_ip", c.ClientIP(),
		)
		c.Next()
		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", reqID,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
