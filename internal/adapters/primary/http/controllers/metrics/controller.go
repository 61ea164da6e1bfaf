package metricsController

import (
	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/pkg/metrics"
)

type Controller struct {
	Metrics *metrics.Collector
}

func New(m *metrics.Collector) *Controller {
	return &Controller{Metrics: m}
}

func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(c.Metrics.Handler()))
}
