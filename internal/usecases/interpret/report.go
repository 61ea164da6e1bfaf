package interpret

import (
	"context"
	"strings"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/usecases/interpret/texts"
)

// FullReport Markdown-отчёт по данным рождения; рассчитанная карта, если есть, добавляется в запрос
func (s *Service) FullReport(ctx context.Context, req domain.ReportRequest, chart *domain.Chart) (string, error) {
	if s.LLM == nil {
		return "", domain.ErrProviderUnavailable
	}

	var lines []string
	if chart != nil {
		lines = planetLines(chart.Planets)
		if asc := ascendantLine(chart.Ascendant); asc != "" {
			lines = append(lines, strings.TrimSuffix(asc, "."))
		}
	}

	md, err := s.complete(ctx, "report", service.Completion{
		System: texts.ReportSystem,
		Prompt: texts.FormatReport(
			SanitizeName(req.Name),
			strings.TrimSpace(req.BirthDate),
			strings.TrimSpace(req.BirthTime),
			strings.TrimSpace(req.BirthPlace),
			lines,
		),
		Temperature: reportTemperature,
		MaxTokens:   reportMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if md == "" {
		md = texts.ReportEmpty
	}
	return md, nil
}
