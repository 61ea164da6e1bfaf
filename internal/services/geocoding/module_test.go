package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/service"
)

type stubGeocoder struct {
	name  string
	coord *domain.Coordinates
	err   error
	calls int
}

func (s *stubGeocoder) Name() string { return s.name }

func (s *stubGeocoder) Geocode(context.Context, string) (*domain.Coordinates, error) {
	s.calls++
	return s.coord, s.err
}

func newService(t *testing.T, providers ...service.IGeocoder) (*Service, *metrics.Collector) {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), m, providers...), m
}

func TestGeocodeFallsThroughProviders(t *testing.T) {
	failing := &stubGeocoder{name: "opencage", err: errors.New("402")}
	empty := &stubGeocoder{name: "second", err: domain.ErrNotFound}
	hit := &stubGeocoder{name: "nominatim", coord: &domain.Coordinates{Lat: 1, Lng: 2}}
	never := &stubGeocoder{name: "never"}

	svc, m := newService(t, failing, empty, hit, never)
	coord, err := svc.Geocode(context.Background(), "  Salvador ")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if coord.Lat != 1 || coord.Provider != "nominatim" {
		t.Fatalf("unexpected coordinates %+v", coord)
	}
	if never.calls != 0 {
		t.Fatalf("chain must stop at first hit")
	}
	if got := testutil.ToFloat64(m.GeocoderLookups.WithLabelValues("opencage", "error")); got != 1 {
		t.Fatalf("opencage error lookups = %v", got)
	}
	if got := testutil.ToFloat64(m.GeocoderLookups.WithLabelValues("second", "miss")); got != 1 {
		t.Fatalf("miss lookups = %v", got)
	}
}

func TestGeocodeNotFound(t *testing.T) {
	svc, _ := newService(t, &stubGeocoder{name: "a"}, &stubGeocoder{name: "b", err: errors.New("down")})

	_, err := svc.Geocode(context.Background(), "Atlântida")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGeocodeRequiresPlace(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Geocode(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGeocodeNotFoundIsMiss(t *testing.T) {
	first := &stubGeocoder{name: "opencage", err: fmt.Errorf("opencage: %w", domain.ErrNotFound)}
	second := &stubGeocoder{name: "nominatim", err: domain.ErrNotFound}

	svc, m := newService(t, first, second)
	_, err := svc.Geocode(context.Background(), "Atlântida")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("every provider must be asked, got %d/%d", first.calls, second.calls)
	}
	for _, name := range []string{"opencage", "nominatim"} {
		if got := testutil.ToFloat64(m.GeocoderLookups.WithLabelValues(name, "miss")); got != 1 {
			t.Fatalf("%s miss lookups = %v", name, got)
		}
		if got := testutil.ToFloat64(m.GeocoderLookups.WithLabelValues(name, "error")); got != 0 {
			t.Fatalf("%s error lookups = %v", name, got)
		}
	}
}
