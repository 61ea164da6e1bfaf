package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/service"
)

// Service опрашивает провайдеров по очереди до первого результата
type Service struct {
	providers []service.IGeocoder
	metrics   *metrics.Collector
	log       *slog.Logger
}

func New(log *slog.Logger, m *metrics.Collector, providers ...service.IGeocoder) *Service {
	return &Service{
		providers: providers,
		metrics:   m,
		log:       log,
	}
}

var _ service.IGeocodingService = (*Service)(nil)

// Geocode ошибки отдельных провайдеров логируются и не прерывают цепочку
func (s *Service) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("%w: place is required", domain.ErrInvalidInput)
	}

	for _, p := range s.providers {
		coord, err := p.Geocode(ctx, place)
		switch {
		case errors.Is(err, domain.ErrNotFound), err == nil && coord == nil:
			s.metrics.GeocoderLookup(p.Name(), "miss")
			s.log.Debug("geocoder found nothing", "provider", p.Name(), "place", place)
		case err != nil:
			s.metrics.GeocoderLookup(p.Name(), "error")
			s.log.Warn("geocoder failed", "provider", p.Name(), "place", place, "error", err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		default:
			s.metrics.GeocoderLookup(p.Name(), "hit")
			if coord.Provider == "" {
				coord.Provider = p.Name()
			}
			return coord, nil
		}
	}

	return nil, fmt.Errorf("%w: unable to geocode %q", domain.ErrNotFound, place)
}
