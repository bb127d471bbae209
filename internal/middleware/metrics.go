package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"credisight-service/internal/metrics"
)

func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.Observe(time.Since(start).Seconds())
	}
}
