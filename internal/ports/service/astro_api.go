package service

import (
	"context"

	"github.com/admin/astrografia/internal/domain"
)

// IAstroAPIService точный провайдер эфемерид
type IAstroAPIService interface {
	GetChart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error)
}
