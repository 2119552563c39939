package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"qaboard/src/infra/metrics"
)

// Metrics records request counts and latency per route template. Unmatched
// paths share one label so arbitrary URLs cannot grow the series count.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
