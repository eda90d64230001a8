package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/metrics"
)

// Metrics counts requests by their route pattern, so ids do not explode the label set.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
