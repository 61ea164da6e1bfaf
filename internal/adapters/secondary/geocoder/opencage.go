package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/service"
)

// OpenCage геокодер с часовым поясом из аннотаций
type OpenCage struct {
	baseURL    string
	key        string
	language   string
	httpClient *http.Client
}

func NewOpenCage(cfg *Config) *OpenCage {
	return &OpenCage{
		baseURL:    cfg.OpenCageURL,
		key:        cfg.OpenCageKey,
		language:   cfg.language(),
		httpClient: &http.Client{Timeout: cfg.timeout()},
	}
}

var _ service.IGeocoder = (*OpenCage)(nil)

type openCageResponse struct {
	Results []struct {
		Geometry *struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"geometry"`
		Annotations struct {
			Timezone *struct {
				Name      *string  `json:"name"`
				OffsetSec *float64 `json:"offset_sec"`
			} `json:"timezone"`
		} `json:"annotations"`
	} `json:"results"`
}

func (g *OpenCage) Name() string {
	return "opencage"
}

func (g *OpenCage) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	q := url.Values{}
	q.Set("q", place)
	q.Set("key", g.key)
	q.Set("language", g.language)
	q.Set("limit", "1")
	q.Set("no_annotations", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build opencage request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call opencage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opencage returned status %d", resp.StatusCode)
	}

	var data openCageResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode opencage response: %w", err)
	}
	if len(data.Results) == 0 {
		return nil, domain.ErrNotFound
	}

	first := data.Results[0]
	if first.Geometry == nil || first.Geometry.Lat == nil || first.Geometry.Lng == nil {
		return nil, domain.ErrNotFound
	}

	coord := &domain.Coordinates{
		Lat:      *first.Geometry.Lat,
		Lng:      *first.Geometry.Lng,
		Provider: g.Name(),
	}
	if tz := first.Annotations.Timezone; tz != nil {
		if tz.OffsetSec != nil {
			offset := *tz.OffsetSec / 3600
			coord.Timezone = &offset
		}
		if tz.Name != nil {
			coord.TZName = *tz.Name
		}
	}

	return coord, nil
}
