package astro

import (
	"context"
	"time"

	"github.com/admin/astrografia/internal/domain"
)

const currentPositionsKey = "astro:positions:current"

// UpdateCachedPositions пересчитывает текущее небо и кладёт его в кэш
func (s *Service) UpdateCachedPositions(ctx context.Context, at time.Time) error {
	if s.Cache == nil {
		s.Log.Warn("cache is not configured, skipping positions update")
		return nil
	}

	chart := s.positionsAt(ctx, at)
	s.storeChart(ctx, currentPositionsKey, chart, currentPositionsTTL)
	s.Log.Info("current positions updated", "at", at.UTC().Format(time.RFC3339), "source", chart.Source)
	return nil
}

// CurrentPositions текущее небо из кэша; при промахе считается на лету
func (s *Service) CurrentPositions(ctx context.Context) (*domain.Chart, error) {
	if chart, ok := s.cachedChart(ctx, currentPositionsKey); ok {
		return chart, nil
	}

	chart := s.positionsAt(ctx, s.now())
	s.storeChart(ctx, currentPositionsKey, chart, currentPositionsTTL)
	return chart, nil
}

func (s *Service) positionsAt(ctx context.Context, at time.Time) *domain.Chart {
	utc := at.UTC()
	zero := 0.0
	birth := domain.BirthData{
		Date:     utc.Format("2006-01-02"),
		Time:     utc.Format("15:04"),
		Timezone: &zero,
	}
	return s.resolve(ctx, birth, s.mode)
}
