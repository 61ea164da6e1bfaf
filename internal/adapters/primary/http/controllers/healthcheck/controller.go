package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// Pinger зависимость, проверяемая в /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	checks map[string]Pinger
	log    *slog.Logger
}

// New checks: имя зависимости -> проверка; nil-значения пропускаются
func New(checks map[string]Pinger, log *slog.Logger) *HealthCheckController {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthCheckController{
		checks: active,
		log:    log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "astrografia",
	})
}

// ready проверка готовности подключённых зависимостей
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	failed := gin.H{}
	for name, p := range c.checks {
		if err := p.Ping(pingCtx); err != nil {
			c.log.Error("dependency not ready", "dependency", name, "error", err)
			failed[name] = "unavailable"
		}
	}

	if len(failed) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"errors": failed,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
