package interpret

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/markdown"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/usecases/interpret/texts"
)

// Perspective отклик на личное размышление. Без LLM или при её отказе
// возвращается заготовленный текст по Солнцу и Асценденту.
func (s *Service) Perspective(ctx context.Context, text string, chart *domain.Chart) (*domain.Interpretation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	md := ""
	if s.LLM != nil {
		generated, err := s.complete(ctx, "perspective", service.Completion{
			System:      texts.PerspectiveSystem,
			Prompt:      texts.FormatPerspective(text, chartSummary(chart)),
			Temperature: sectionTemperature,
			MaxTokens:   perspectiveTokens,
		})
		if err != nil {
			s.Log.Warn("perspective generation failed, using canned reflection", "error", err)
		}
		md = generated
	}
	if md == "" {
		md = CannedPerspective(text, chart)
	}

	html, err := markdown.ToHTML(md)
	if err != nil {
		return nil, err
	}
	return &domain.Interpretation{HTML: html, Markdown: md, Section: "perspectiva"}, nil
}

// CannedPerspective заготовленный отклик: благодарность, Солнце и Асцендент
// (если оба известны), заключение зависит от длины текста
func CannedPerspective(text string, chart *domain.Chart) string {
	parts := []string{texts.PerspectiveThanks}
	if sun, asc, ok := chartSigns(chart); ok {
		parts = append(parts, fmt.Sprintf(texts.PerspectiveSignature, sun, asc))
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) > texts.PerspectiveDeepMinimum {
		parts = append(parts, texts.PerspectiveDeep)
	} else {
		parts = append(parts, texts.PerspectiveBrief)
	}
	return strings.Join(parts, "\n\n")
}

// chartSigns знаки Солнца и Асцендента; false, если чего-то нет
func chartSigns(chart *domain.Chart) (string, string, bool) {
	if chart == nil || chart.Ascendant == nil || chart.Ascendant.Sign == "" {
		return "", "", false
	}
	sun, ok := chart.Planet("Sol")
	if !ok {
		sun, ok = chart.Planet("Sun")
	}
	if !ok || sun.Sign == "" {
		return "", "", false
	}
	return sun.Sign, chart.Ascendant.Sign, true
}

func chartSummary(chart *domain.Chart) string {
	sun, asc, ok := chartSigns(chart)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Mapa da pessoa: Sol em %s, Ascendente em %s.", sun, asc)
}
