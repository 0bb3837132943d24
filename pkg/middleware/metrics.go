package middleware

import (
	"strconv"
	"time"

	"github.com/farmconnect/farmconnect/backend/api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestMetrics records request counts and latency per matched route.
// Unmatched paths are grouped under "unmatched" to keep label cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
