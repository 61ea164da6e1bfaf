package astro

import (
	"log/slog"
	"time"

	"github.com/admin/astrografia/internal/pkg/ephemeris"
	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/cache"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/ports/usecase"
)

const (
	defaultChartTTL     = 24 * time.Hour
	defaultGeoTTL       = 30 * 24 * time.Hour
	currentPositionsTTL = 25 * time.Hour
)

// Config настройки расчёта карт
type Config struct {
	// "", "time-fraction" или "sidereal"
	AscendantMode string `envconfig:"ASCENDANT_MODE"`
	// в часах
	CacheTTL int `envconfig:"CACHE_TTL" default:"24"`
}

// Service построение карт: точный провайдер, затем приближённый расчёт
type Service struct {
	AstroAPIService service.IAstroAPIService // nil, если ключ провайдера не задан
	Geocoder        service.IGeocodingService
	Cache           cache.Cache // nil, если кэш выключен
	Metrics         *metrics.Collector
	Log             *slog.Logger

	mode     ephemeris.AscendantMode
	chartTTL time.Duration
	now      func() time.Time
}

func New(
	cfg Config,
	astroAPIService service.IAstroAPIService,
	geocoder service.IGeocodingService,
	c cache.Cache,
	m *metrics.Collector,
	log *slog.Logger,
) (*Service, error) {
	mode, err := ephemeris.ParseAscendantMode(cfg.AscendantMode)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.CacheTTL) * time.Hour
	if ttl <= 0 {
		ttl = defaultChartTTL
	}

	return &Service{
		AstroAPIService: astroAPIService,
		Geocoder:        geocoder,
		Cache:           c,
		Metrics:         m,
		Log:             log,
		mode:            mode,
		chartTTL:        ttl,
		now:             time.Now,
	}, nil
}

var _ usecase.IAstroUseCase = (*Service)(nil)
