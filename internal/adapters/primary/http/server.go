package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin/astrografia/internal/adapters/primary/http/middlewares"
	"github.com/admin/astrografia/internal/pkg/metrics"
)

type Config struct {
	Host                    string        `envconfig:"HOST"`
	Port                    string        `envconfig:"PORT" default:"8080"`
	WriteTimeout            time.Duration `envconfig:"WRITE_TIMEOUT" default:"120s"`
	ReadTimeout             time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	ReadHeaderTimeout       time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"3s"`
	IdleTimeout             time.Duration `envconfig:"IDLE_TIMEOUT" default:"15s"`
	EnableLoggingMiddleware bool          `envconfig:"ENABLE_LOGGING_MIDDLEWARE" default:"true"`
}

type Controller interface {
	RegisterRoutes(router *gin.Engine)
}

// NewRouter gin с общими middleware и маршрутами контроллеров
func NewRouter(cfg *Config, logger *slog.Logger, m *metrics.Collector, controllers ...Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middlewares.RequestID(), middlewares.RecoveryLogger(logger), middlewares.Metrics(m))
	if cfg.EnableLoggingMiddleware {
		router.Use(middlewares.RequestLogger(logger))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Регистрируем маршруты всех контроллеров
	for _, controller := range controllers {
		controller.RegisterRoutes(router)
	}

	return router
}

func NewHTTPServer(
	cfg *Config,
	logger *slog.Logger,
	m *metrics.Collector,
	controllers ...Controller,
) *http.Server {
	return &http.Server{
		Handler:           NewRouter(cfg, logger, m, controllers...),
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
