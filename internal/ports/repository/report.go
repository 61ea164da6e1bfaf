package repository

import (
	"context"
	"time"

	"github.com/admin/astrografia/internal/domain"
	"github.com/google/uuid"
)

// IReportRepo интерфейс для работы с отчётами
type IReportRepo interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	// Claim переводит в processing отчёт в статусе pending/failed или зависший в processing
	// с updated_at раньше staleBefore; false, если его уже взял другой обработчик
	Claim(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus, errMsg *string) error
	// SaveResult сохраняет результат и переводит отчёт в done
	SaveResult(ctx context.Context, r *domain.Report) error
}
