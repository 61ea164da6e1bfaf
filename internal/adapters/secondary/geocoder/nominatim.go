package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/service"
)

// Nominatim геокодер OpenStreetMap; ключ не нужен, но обязателен User-Agent
type Nominatim struct {
	baseURL    string
	userAgent  string
	language   string
	limiter    *rate.Limiter
	httpClient *http.Client
}

func NewNominatim(cfg *Config) *Nominatim {
	rps := cfg.NominatimRPS
	if rps <= 0 {
		rps = 1
	}

	return &Nominatim{
		baseURL:    cfg.NominatimURL,
		userAgent:  cfg.UserAgent,
		language:   cfg.language(),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		httpClient: &http.Client{Timeout: cfg.timeout()},
	}
}

var _ service.IGeocoder = (*Nominatim)(nil)

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Nominatim) Name() string {
	return "nominatim"
}

func (g *Nominatim) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept-Language", g.language)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(places) == 0 || places[0].Lat == "" || places[0].Lon == "" {
		return nil, domain.ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	coord := &domain.Coordinates{
		Lat:      lat,
		Lng:      lng,
		Provider: g.Name(),
	}
	if tz := ApproximateTimezone(lng); !math.IsNaN(tz) && !math.IsInf(tz, 0) {
		coord.Timezone = &tz
	}

	return coord, nil
}

// ApproximateTimezone смещение по долготе с шагом 15 минут
func ApproximateTimezone(lng float64) float64 {
	return math.Floor(lng/15*4+0.5) / 4
}
