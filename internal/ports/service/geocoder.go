package service

import (
	"context"

	"github.com/admin/astrografia/internal/domain"
)

// IGeocoder один провайдер геокодирования. Пустой ответ провайдера возвращается как domain.ErrNotFound
type IGeocoder interface {
	Name() string
	Geocode(ctx context.Context, place string) (*domain.Coordinates, error)
}

// IGeocodingService цепочка провайдеров
type IGeocodingService interface {
	Geocode(ctx context.Context, place string) (*domain.Coordinates, error)
}
