package astro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/cache"
)

// Coordinates геокодирование места рождения с кэшированием удачных ответов
func (s *Service) Coordinates(ctx context.Context, place string) (*domain.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("%w: place is required", domain.ErrInvalidInput)
	}
	if s.Geocoder == nil {
		return nil, domain.ErrProviderUnavailable
	}

	key := "astro:geo:" + strings.ToLower(place)
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key)
		if err == nil {
			var coord domain.Coordinates
			if err := json.Unmarshal([]byte(raw), &coord); err == nil {
				return &coord, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("geo cache read failed", "key", key, "error", err)
		}
	}

	coord, err := s.Geocoder.Geocode(ctx, place)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(coord); err == nil {
			if err := s.Cache.Set(ctx, key, string(raw), defaultGeoTTL); err != nil {
				s.Log.Warn("geo cache write failed", "key", key, "error", err)
			}
		}
	}

	return coord, nil
}
