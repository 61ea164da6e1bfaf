package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/markdown"
	"github.com/admin/astrografia/internal/usecases/interpret"
	"github.com/admin/astrografia/internal/usecases/interpret/texts"
)

// Process генерирует отчёт. Ошибки генерации фиксируются в отчёте и возвращаются
// как BusinessError, чтобы сообщение не переобрабатывалось.
func (s *Service) Process(ctx context.Context, id uuid.UUID) error {
	claimed, err := s.Repo.Claim(ctx, id, s.now().Add(-processTimeout))
	if err != nil {
		return err
	}
	if !claimed {
		s.Log.Info("report already taken or finished, skipping", "report_id", id)
		return nil
	}

	report, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return s.release(ctx, id, err)
	}

	s.Log.Info("generating report", "report_id", id)

	if err := s.generate(ctx, report); err != nil {
		return s.fail(ctx, id, err)
	}

	if s.Storage != nil {
		key := objectPrefix + id.String() + ".html"
		if err := s.Storage.PutFile(ctx, key, []byte(*report.HTML), htmlType); err != nil {
			return s.fail(ctx, id, fmt.Errorf("upload report: %w", err))
		}
		report.ObjectKey = &key
		report.HTML = nil
	}

	if err := s.Repo.SaveResult(ctx, report); err != nil {
		if domain.IsBusinessError(err) {
			return err
		}
		return s.release(ctx, id, err)
	}

	s.Metrics.ReportFinished(domain.ReportDone.String())
	s.Log.Info("report generated", "report_id", id, "stored", report.ObjectKey != nil)
	return nil
}

// generate заполняет карту, Markdown и HTML-документ отчёта
func (s *Service) generate(ctx context.Context, report *domain.Report) error {
	birth := domain.BirthData{Date: report.BirthDate, Time: report.BirthTime}

	coords, err := s.Astro.Coordinates(ctx, report.BirthPlace)
	if err != nil {
		s.Log.Warn("failed to geocode birth place", "report_id", report.ID, "place", report.BirthPlace, "error", err)
	} else {
		birth.Latitude = &coords.Lat
		birth.Longitude = &coords.Lng
		birth.Timezone = coords.Timezone
	}

	chart, err := s.Astro.Chart(ctx, birth)
	if err != nil {
		s.Log.Warn("failed to build chart for report", "report_id", report.ID, "error", err)
	}

	req := domain.ReportRequest{
		Name:       report.Name,
		BirthDate:  report.BirthDate,
		BirthTime:  report.BirthTime,
		BirthPlace: report.BirthPlace,
	}
	md, err := s.Writer.FullReport(ctx, req, chart)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	body, err := markdown.ToHTML(md)
	if err != nil {
		return err
	}
	doc := markdown.Document(fmt.Sprintf(texts.ReportTitle, interpret.SanitizeName(report.Name)), body)

	if chart != nil {
		raw, err := json.Marshal(chart)
		if err != nil {
			return fmt.Errorf("encode chart: %w", err)
		}
		msg := json.RawMessage(raw)
		report.Chart = &msg
	}
	report.Markdown = &md
	report.HTML = &doc
	return nil
}

func (s *Service) fail(ctx context.Context, id uuid.UUID, cause error) error {
	s.Log.Error("report generation failed", "report_id", id, "error", cause)
	s.Metrics.ReportFinished(domain.ReportFailed.String())

	msg := cause.Error()
	if err := s.Repo.UpdateStatus(ctx, id, domain.ReportFailed, &msg); err != nil {
		return fmt.Errorf("mark report failed: %w", err)
	}
	return domain.WrapBusinessError(cause)
}

// release возвращает отчёт в failed после технической ошибки, чтобы повторная
// доставка могла снова его взять. Ошибка остаётся технической.
func (s *Service) release(ctx context.Context, id uuid.UUID, cause error) error {
	s.Log.Error("report processing interrupted", "report_id", id, "error", cause)

	msg := cause.Error()
	if err := s.Repo.UpdateStatus(ctx, id, domain.ReportFailed, &msg); err != nil {
		s.Log.Error("failed to release report", "report_id", id, "error", err)
	}
	return cause
}
