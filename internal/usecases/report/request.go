package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
)

// Request создаёт отчёт в статусе pending и ставит его в очередь
func (s *Service) Request(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	req = domain.ReportRequest{
		Name:       strings.TrimSpace(req.Name),
		BirthDate:  strings.TrimSpace(req.BirthDate),
		BirthTime:  strings.TrimSpace(req.BirthTime),
		BirthPlace: strings.TrimSpace(req.BirthPlace),
	}
	if req.Name == "" || req.BirthDate == "" || req.BirthTime == "" || req.BirthPlace == "" {
		return nil, fmt.Errorf("%w: Dados incompletos.", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	report := &domain.Report{
		ID:         uuid.New(),
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		BirthTime:  req.BirthTime,
		BirthPlace: req.BirthPlace,
		Status:     domain.ReportPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, report); err != nil {
		return nil, err
	}

	if s.Producer != nil {
		err := s.Producer.SendReportRequest(ctx, report.ID)
		if err == nil {
			s.Log.Info("report queued", "report_id", report.ID)
			return report, nil
		}
		s.Log.Warn("failed to queue report, processing in background", "report_id", report.ID, "error", err)
	}

	s.processInBackground(ctx, report.ID)
	return report, nil
}

func (s *Service) processInBackground(ctx context.Context, id uuid.UUID) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), processTimeout)
		defer cancel()

		if err := s.Process(ctx, id); err != nil && !domain.IsBusinessError(err) {
			s.Log.Error("background report processing failed", "report_id", id, "error", err)
		}
	}()
}

// Get отчёт по id; для сохранённого в хранилище добавляется временная ссылка
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	report, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.Status == domain.ReportDone && report.ObjectKey != nil && s.Storage != nil {
		url, err := s.Storage.GetPresignedURL(ctx, *report.ObjectKey, downloadTTL)
		if err != nil {
			s.Log.Warn("failed to presign report", "report_id", id, "error", err)
		} else {
			report.DownloadURL = url
		}
	}
	return report, nil
}

// Document HTML-страница готового отчёта из хранилища или из БД
func (s *Service) Document(ctx context.Context, id uuid.UUID) ([]byte, error) {
	report, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportDone {
		return nil, fmt.Errorf("%w: report %s is %s", domain.ErrNotFound, id, report.Status)
	}

	switch {
	case report.HTML != nil:
		return []byte(*report.HTML), nil
	case report.ObjectKey != nil && s.Storage != nil:
		return s.Storage.GetFile(ctx, *report.ObjectKey)
	default:
		return nil, fmt.Errorf("%w: report %s has no document", domain.ErrNotFound, id)
	}
}
