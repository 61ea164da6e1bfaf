package astro

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/ephemeris"
	"github.com/admin/astrografia/internal/ports/cache"
)

const (
	reasonNoProvider     = "Chave ASTRO_API_KEY não configurada"
	reasonProviderFailed = "Erro ao contatar API externa"
)

// Chart карта для даты и времени рождения. Отказ провайдера не является ошибкой:
// возвращается приближённая карта с source=fallback и причиной.
func (s *Service) Chart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}

	mode := s.mode
	if birth.AscendantMode != "" {
		m, err := ephemeris.ParseAscendantMode(birth.AscendantMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnknownAscendantMode, err)
		}
		mode = m
	}

	key := chartCacheKey(birth, mode)
	if chart, ok := s.cachedChart(ctx, key); ok {
		return chart, nil
	}

	chart := s.resolve(ctx, birth, mode)
	if chart.Source == domain.ChartSourceAPI {
		s.storeChart(ctx, key, chart, s.chartTTL)
	}
	return chart, nil
}

// resolve точный провайдер, при любом отказе приближённый расчёт
func (s *Service) resolve(ctx context.Context, birth domain.BirthData, mode ephemeris.AscendantMode) *domain.Chart {
	chart, err := s.preciseChart(ctx, birth)
	if err == nil {
		s.Metrics.ChartServed(string(domain.ChartSourceAPI))
		return chart
	}

	reason, kind := reasonNoProvider, "disabled"
	var perr *domain.ProviderError
	switch {
	case errors.As(err, &perr):
		reason, kind = perr.Reason, perr.Kind
	case !errors.Is(err, domain.ErrProviderUnavailable):
		reason, kind = reasonProviderFailed, "transport"
	}

	s.Metrics.ProviderFailed(kind)
	s.Metrics.ChartServed(string(domain.ChartSourceFallback))
	if kind != "disabled" {
		s.Log.Warn("precise provider failed, using approximation", "reason", reason, "error", err)
	}

	fallback := ApproximateChart(birth, mode)
	fallback.Reason = reason
	return fallback
}

func (s *Service) preciseChart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error) {
	if s.AstroAPIService == nil {
		return nil, domain.ErrProviderUnavailable
	}
	return s.AstroAPIService.GetChart(ctx, birth)
}

// ApproximateChart приближённая карта; при невалидной дате список планет пуст
func ApproximateChart(birth domain.BirthData, mode ephemeris.AscendantMode) *domain.Chart {
	m := ephemeris.ParseMoment(birth.Date, birth.Time)
	if birth.Timezone != nil {
		m = m.WithOffset(*birth.Timezone)
	}

	computed := ephemeris.Compute(m, ephemeris.Options{
		Longitude: birth.Longitude,
		Mode:      mode,
	})

	return FromEphemeris(computed)
}

// FromEphemeris переводит результат расчёта в формат ответа
func FromEphemeris(c ephemeris.Chart) *domain.Chart {
	chart := &domain.Chart{
		Planets: make([]domain.Planet, 0, len(c.Bodies)),
		Source:  domain.ChartSourceFallback,
	}

	for _, p := range c.Bodies {
		chart.Planets = append(chart.Planets, domain.Planet{
			Name:       p.Body.NamePT,
			Sign:       p.Sign.Portuguese(),
			SignDegree: p.Degree,
			Degree:     p.Longitude,
			Icon:       p.Body.Icon,
		})
	}

	if c.Ascendant != nil {
		chart.Ascendant = &domain.Ascendant{
			Sign:   c.Ascendant.Sign.Portuguese(),
			Degree: c.Ascendant.Degree,
			Mode:   string(c.Ascendant.Mode),
		}
	}

	return chart
}

func chartCacheKey(birth domain.BirthData, mode ephemeris.AscendantMode) string {
	parts := []string{
		strings.TrimSpace(birth.Date),
		strings.TrimSpace(birth.Time),
		optionalFloat(birth.Latitude),
		optionalFloat(birth.Longitude),
		optionalFloat(birth.Timezone),
		string(mode),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "astro:chart:" + hex.EncodeToString(sum[:16])
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 6, 64)
}

func (s *Service) cachedChart(ctx context.Context, key string) (*domain.Chart, bool) {
	if s.Cache == nil {
		return nil, false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("chart cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var chart domain.Chart
	if err := json.Unmarshal([]byte(raw), &chart); err != nil {
		s.Log.Warn("chart cache entry is corrupted", "key", key, "error", err)
		return nil, false
	}
	return &chart, true
}

func (s *Service) storeChart(ctx context.Context, key string, chart *domain.Chart, ttl time.Duration) {
	if s.Cache == nil {
		return
	}

	raw, err := json.Marshal(chart)
	if err != nil {
		s.Log.Warn("failed to encode chart for cache", "error", err)
		return
	}
	if err := s.Cache.Set(ctx, key, string(raw), ttl); err != nil {
		s.Log.Warn("chart cache write failed", "key", key, "error", err)
	}
}
