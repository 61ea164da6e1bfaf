package astroApi

import (
	"context"
	"errors"
	"testing"

	astroApiAdapter "github.com/admin/astrografia/internal/adapters/secondary/astroApi"
	"github.com/admin/astrografia/internal/domain"
)

type fakeClient struct {
	req  astroApiAdapter.PlanetsRequest
	resp *astroApiAdapter.PlanetsResponse
	err  error
}

func (f *fakeClient) GetPlanets(_ context.Context, req astroApiAdapter.PlanetsRequest) (*astroApiAdapter.PlanetsResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeClient) Language() string { return "pt" }

func item(name, sign string, full, norm float64) astroApiAdapter.PlanetItem {
	var it astroApiAdapter.PlanetItem
	it.Planet.En = name
	it.ZodiacSign.Name.En = sign
	it.FullDegree = full
	it.NormDegree = norm
	return it
}

func TestGetChartMapsOutput(t *testing.T) {
	client := &fakeClient{resp: &astroApiAdapter.PlanetsResponse{Output: []astroApiAdapter.PlanetItem{
		item("Sun", "Gemini", 83.9, 23.9),
		item("Moon", "Pisces", 353.1, 23.1),
		item("Chiron", "Cancer", 100, 10),
		item("Ascendant", "Scorpio", 217.5, 7.5),
	}}}

	chart, err := New(client).GetChart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30"})
	if err != nil {
		t.Fatalf("GetChart: %v", err)
	}

	if client.req.Year != 1990 || client.req.Month != 6 || client.req.Date != 15 || client.req.Hours != 14 || client.req.Minutes != 30 {
		t.Fatalf("unexpected request %+v", client.req)
	}
	if client.req.Timezone != -3 {
		t.Fatalf("default timezone = %v, want -3", client.req.Timezone)
	}
	if client.req.Latitude != nil || client.req.Longitude != nil {
		t.Fatalf("coordinates must be omitted when unknown")
	}

	if chart.Source != domain.ChartSourceAPI {
		t.Fatalf("source = %s", chart.Source)
	}
	if len(chart.Planets) != 2 {
		t.Fatalf("planets = %+v, unknown points must be dropped", chart.Planets)
	}
	sun := chart.Planets[0]
	if sun.Name != "Sol" || sun.Sign != "Gêmeos" || sun.SignDegree != 23.9 || sun.Degree != 83.9 || sun.Icon != "☀️" {
		t.Fatalf("unexpected sun %+v", sun)
	}
	if chart.Ascendant == nil || chart.Ascendant.Sign != "Escorpião" || chart.Ascendant.Degree != 7.5 {
		t.Fatalf("unexpected ascendant %+v", chart.Ascendant)
	}
}

func TestGetChartUsesExplicitTimezone(t *testing.T) {
	tz, lat, lng := -2.0, -8.05, -34.9
	client := &fakeClient{resp: &astroApiAdapter.PlanetsResponse{Output: []astroApiAdapter.PlanetItem{
		item("Sun", "Gemini", 83.9, 23.9),
		item("Ascendant", "Leo", 130, 10),
	}}}

	_, err := New(client).GetChart(context.Background(), domain.BirthData{
		Date: "1990-06-15", Time: "14:30", Timezone: &tz, Latitude: &lat, Longitude: &lng,
	})
	if err != nil {
		t.Fatalf("GetChart: %v", err)
	}
	if client.req.Timezone != -2 || *client.req.Latitude != lat || *client.req.Longitude != lng {
		t.Fatalf("unexpected request %+v", client.req)
	}
}

func TestGetChartErrors(t *testing.T) {
	tests := []struct {
		name   string
		birth  domain.BirthData
		client *fakeClient
		reason string
	}{
		{
			name:   "malformed date",
			birth:  domain.BirthData{Date: "15/06/1990", Time: "14:30"},
			client: &fakeClient{},
			reason: "Data ou hora ausentes/invalidas",
		},
		{
			name:   "non-200",
			birth:  domain.BirthData{Date: "1990-06-15", Time: "14:30"},
			client: &fakeClient{err: &astroApiAdapter.StatusError{StatusCode: 503}},
			reason: "API respondeu 503",
		},
		{
			name:   "missing output",
			birth:  domain.BirthData{Date: "1990-06-15", Time: "14:30"},
			client: &fakeClient{resp: &astroApiAdapter.PlanetsResponse{}},
			reason: "Resposta inesperada da API",
		},
		{
			name:  "no ascendant",
			birth: domain.BirthData{Date: "1990-06-15", Time: "14:30"},
			client: &fakeClient{resp: &astroApiAdapter.PlanetsResponse{Output: []astroApiAdapter.PlanetItem{
				item("Sun", "Gemini", 83.9, 23.9),
			}}},
			reason: "API retornou sem dados suficientes",
		},
		{
			name:   "transport",
			birth:  domain.BirthData{Date: "1990-06-15", Time: "14:30"},
			client: &fakeClient{err: errors.New("dial tcp: timeout")},
			reason: "Erro ao contatar API externa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.client).GetChart(context.Background(), tt.birth)
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := FallbackReason(err); got != tt.reason {
				t.Fatalf("reason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestGetChartWrapsProviderError(t *testing.T) {
	client := &fakeClient{err: &astroApiAdapter.StatusError{StatusCode: 401}}

	_, err := New(client).GetChart(context.Background(), domain.BirthData{Date: "1990-06-15", Time: "14:30"})

	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if perr.Kind != "status" || perr.Reason != "API respondeu 401" {
		t.Fatalf("unexpected provider error %+v", perr)
	}
	if FallbackReason(nil) != "" {
		t.Fatalf("nil error has no reason")
	}
}
