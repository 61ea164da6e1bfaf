package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
)

// IAstroUseCase построение карт и геокодирование
type IAstroUseCase interface {
	Chart(ctx context.Context, birth domain.BirthData) (*domain.Chart, error)
	Coordinates(ctx context.Context, place string) (*domain.Coordinates, error)
	CurrentPositions(ctx context.Context) (*domain.Chart, error)
}

// IInterpretUseCase тексты интерпретаций
type IInterpretUseCase interface {
	Section(ctx context.Context, req domain.SectionRequest) (*domain.Interpretation, error)
	Perspective(ctx context.Context, text string, chart *domain.Chart) (*domain.Interpretation, error)
}

// IPerspectiveUseCase перспективы пользователей
type IPerspectiveUseCase interface {
	Add(ctx context.Context, author, text string, chart *domain.Chart) (*domain.Perspective, error)
	List(ctx context.Context, author string, page, perPage int) (*domain.PerspectivePage, error)
}

// IReportUseCase асинхронные полные отчёты
type IReportUseCase interface {
	Request(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	// Document готовый HTML-документ отчёта
	Document(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// IReportWriter текст полного отчёта
type IReportWriter interface {
	FullReport(ctx context.Context, req domain.ReportRequest, chart *domain.Chart) (string, error)
}
