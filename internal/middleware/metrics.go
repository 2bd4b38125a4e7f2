package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ride_tracker/internal/metrics"
)

// Metrics records request counts and latency per method/path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.ReqCount.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.ReqDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
