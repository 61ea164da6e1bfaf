package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/pkg/metrics"
)

// Metrics латентность и статусы по шаблону маршрута
func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
