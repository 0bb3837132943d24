package middleware

import (
	"net/http"
	"sync"

	"github.com/farmconnect/farmconnect/backend/api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientKey identifies the caller for rate limiting. There are no user
// accounts, so the client IP is the only key.
func clientKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware returns a Gin middleware enforcing a per-IP token bucket.
// rps = allowed events per second, burst = maximum tokens in bucket.
// Each call gets its own bucket set.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	var buckets sync.Map // map[string]*rate.Limiter
	limiterFor := func(key string) *rate.Limiter {
		if v, ok := buckets.Load(key); ok {
			return v.(*rate.Limiter)
		}
		v, _ := buckets.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		return v.(*rate.Limiter)
	}

	return func(c *gin.Context) {
		if !limiterFor(clientKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
