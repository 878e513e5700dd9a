package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"movie-catalog-backend/internal/infrastructure/metrics"
)

// Metrics ghi request count + latency theo route template (c.FullPath)
// để tránh label cardinality nổ theo path param
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
