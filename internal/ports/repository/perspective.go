package repository

import (
	"context"

	"github.com/admin/astrografia/internal/domain"
)

// IPerspectiveRepo интерфейс для работы с перспективами
type IPerspectiveRepo interface {
	Create(ctx context.Context, p *domain.Perspective) error
	ListByAuthor(ctx context.Context, author string, limit, offset int) ([]*domain.Perspective, error)
	CountByAuthor(ctx context.Context, author string) (int, error)
}
