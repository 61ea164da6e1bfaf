package astro

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/admin/astrografia/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/service"
)

type fakeProvider struct {
	chart *domain.Chart
	err   error
	calls int
}

func (f *fakeProvider) GetChart(context.Context, domain.BirthData) (*domain.Chart, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c := *f.chart
	return &c, nil
}

type fakeGeocoder struct {
	coord *domain.Coordinates
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(context.Context, string) (*domain.Coordinates, error) {
	f.calls++
	return f.coord, f.err
}

func newService(t *testing.T, provider service.IAstroAPIService, geo service.IGeocodingService) (*Service, *metrics.Collector) {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	s, err := New(Config{}, provider, geo, inmemory.NewTTLCache(), m, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, m
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestChartFallbackWithoutProvider(t *testing.T) {
	s, m := newService(t, nil, nil)

	chart, err := s.Chart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30"})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if chart.Source != domain.ChartSourceFallback || chart.Reason != "Chave ASTRO_API_KEY não configurada" {
		t.Fatalf("unexpected source/reason %s %q", chart.Source, chart.Reason)
	}

	sun, ok := chart.Planet("Sol")
	if !ok || sun.Sign != "Gêmeos" || !approx(sun.Degree, 83.74462465667875) || sun.Icon != "☀️" {
		t.Fatalf("unexpected sun %+v", sun)
	}
	if chart.Ascendant == nil || chart.Ascendant.Sign != "Escorpião" || !approx(chart.Ascendant.Degree, 7.5) {
		t.Fatalf("unexpected ascendant %+v", chart.Ascendant)
	}
	if got := testutil.ToFloat64(m.Charts.WithLabelValues("fallback")); got != 1 {
		t.Fatalf("fallback counter = %v", got)
	}
}

func TestChartUsesProviderAndCaches(t *testing.T) {
	provider := &fakeProvider{chart: &domain.Chart{
		Planets:   []domain.Planet{{Name: "Sol", Sign: "Gêmeos", SignDegree: 23.9, Degree: 83.9}},
		Ascendant: &domain.Ascendant{Sign: "Escorpião", Degree: 1},
		Source:    domain.ChartSourceAPI,
	}}
	s, _ := newService(t, provider, nil)
	birth := domain.BirthData{Date: "1990-06-15", Time: "14:30"}

	for i := 0; i < 2; i++ {
		chart, err := s.Chart(context.Background(), birth)
		if err != nil {
			t.Fatalf("Chart: %v", err)
		}
		if chart.Source != domain.ChartSourceAPI || chart.Reason != "" {
			t.Fatalf("unexpected chart %+v", chart)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, second call must hit cache", provider.calls)
	}
}

func TestChartFallbackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: &domain.ProviderError{Kind: "status", Reason: "API respondeu 503", Err: errors.New("503")}}
	s, m := newService(t, provider, nil)
	birth := domain.BirthData{Date: "1990-06-15", Time: "14:30"}

	for i := 0; i < 2; i++ {
		chart, err := s.Chart(context.Background(), birth)
		if err != nil {
			t.Fatalf("Chart: %v", err)
		}
		if chart.Source != domain.ChartSourceFallback || chart.Reason != "API respondeu 503" {
			t.Fatalf("unexpected chart %s %q", chart.Source, chart.Reason)
		}
	}
	if provider.calls != 2 {
		t.Fatalf("fallback charts must not be cached, provider calls = %d", provider.calls)
	}
	if got := testutil.ToFloat64(m.ProviderErrors.WithLabelValues("status")); got != 2 {
		t.Fatalf("provider errors = %v", got)
	}
}

func TestChartGenericProviderError(t *testing.T) {
	s, _ := newService(t, &fakeProvider{err: errors.New("boom")}, nil)

	chart, err := s.Chart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30"})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if chart.Reason != "Erro ao contatar API externa" {
		t.Fatalf("reason = %q", chart.Reason)
	}
}

func TestChartValidation(t *testing.T) {
	s, _ := newService(t, nil, nil)

	tests := []domain.BirthData{
		{Date: "", Time: "14:30"},
		{Date: "1990-06-15", Time: " "},
		{Date: "1990-06-15", Time: "14:30", AscendantMode: "placidus"},
	}
	for _, birth := range tests {
		if _, err := s.Chart(context.Background(), birth); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", birth, err)
		}
	}

	_, err := s.Chart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30", AscendantMode: "placidus"})
	if !errors.Is(err, domain.ErrUnknownAscendantMode) {
		t.Fatalf("expected ErrUnknownAscendantMode, got %v", err)
	}
	if _, err := s.Chart(context.Background(), domain.BirthData{Time: "14:30"}); errors.Is(err, domain.ErrUnknownAscendantMode) {
		t.Fatal("missing date must not be reported as unknown mode")
	}
}

func TestChartMalformedDateDegrades(t *testing.T) {
	s, _ := newService(t, nil, nil)

	chart, err := s.Chart(context.Background(), domain.BirthData{Date: "ontem", Time: "cedo"})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if chart.Planets == nil || len(chart.Planets) != 0 || chart.Ascendant != nil {
		t.Fatalf("expected empty chart, got %+v", chart)
	}
}

func TestChartAppliesTimezone(t *testing.T) {
	s, _ := newService(t, nil, nil)
	tz := -3.0

	chart, err := s.Chart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30", Timezone: &tz})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	sun, _ := chart.Planet("Sol")
	if !approx(sun.Degree, 83.86782591825977) {
		t.Fatalf("sun longitude = %v", sun.Degree)
	}
	if chart.Ascendant.Degree != 7.5 {
		t.Fatalf("time-fraction ascendant must use local clock, got %v", chart.Ascendant.Degree)
	}
}

func TestChartSiderealWithLongitude(t *testing.T) {
	s, _ := newService(t, nil, nil)
	lng := -46.6333

	chart, err := s.Chart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30", Longitude: &lng})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if chart.Ascendant == nil || chart.Ascendant.Mode != "sidereal" || chart.Ascendant.Sign != "Gêmeos" {
		t.Fatalf("unexpected ascendant %+v", chart.Ascendant)
	}
}

func TestCurrentPositions(t *testing.T) {
	s, _ := newService(t, nil, nil)
	now := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	chart, err := s.CurrentPositions(context.Background())
	if err != nil {
		t.Fatalf("CurrentPositions: %v", err)
	}
	sun, _ := chart.Planet("Sol")
	if sun.Sign != "Capricórnio" || !approx(sun.Degree, 280.46434999999997) {
		t.Fatalf("unexpected sun at epoch %+v", sun)
	}

	now = now.Add(90 * 24 * time.Hour)
	again, _ := s.CurrentPositions(context.Background())
	sunAgain, _ := again.Planet("Sol")
	if sunAgain.Degree != sun.Degree {
		t.Fatalf("second call must be served from cache")
	}

	if err := s.UpdateCachedPositions(context.Background(), now); err != nil {
		t.Fatalf("UpdateCachedPositions: %v", err)
	}
	updated, _ := s.CurrentPositions(context.Background())
	sunUpdated, _ := updated.Planet("Sol")
	if sunUpdated.Degree == sun.Degree {
		t.Fatalf("update must refresh cached positions")
	}
}

func TestUpdateCachedPositionsWithoutCache(t *testing.T) {
	s, _ := newService(t, nil, nil)
	s.Cache = nil

	if err := s.UpdateCachedPositions(context.Background(), time.Now()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestCoordinatesCached(t *testing.T) {
	tz := -3.0
	geo := &fakeGeocoder{coord: &domain.Coordinates{Lat: -23.55, Lng: -46.63, Timezone: &tz}}
	s, _ := newService(t, nil, geo)

	for i := 0; i < 2; i++ {
		coord, err := s.Coordinates(context.Background(), " São Paulo ")
		if err != nil {
			t.Fatalf("Coordinates: %v", err)
		}
		if coord.Lat != -23.55 || coord.Timezone == nil || *coord.Timezone != -3 {
			t.Fatalf("unexpected coordinates %+v", coord)
		}
	}
	if geo.calls != 1 {
		t.Fatalf("geocoder calls = %d", geo.calls)
	}
}

func TestCoordinatesErrors(t *testing.T) {
	geo := &fakeGeocoder{err: domain.ErrNotFound}
	s, _ := newService(t, nil, geo)

	if _, err := s.Coordinates(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.Coordinates(context.Background(), "Atlântida"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
