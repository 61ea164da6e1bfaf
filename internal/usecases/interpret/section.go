package interpret

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/pkg/markdown"
	"github.com/admin/astrografia/internal/ports/cache"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/usecases/interpret/texts"
)

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_ '\-]`)

// SanitizeName оставляет буквы, цифры, пробел, дефис и апостроф
func SanitizeName(name string) string {
	clean := strings.TrimSpace(unsafeNameChars.ReplaceAllString(name, ""))
	if clean == "" {
		return texts.DefaultPersonName
	}
	return clean
}

// Section интерпретация одного раздела карты
func (s *Service) Section(ctx context.Context, req domain.SectionRequest) (*domain.Interpretation, error) {
	focus, ok := req.Theme.Focus()
	if !ok {
		return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidInput, req.Theme)
	}
	if req.Planets == nil {
		return nil, fmt.Errorf("%w: planets are required", domain.ErrInvalidInput)
	}
	if s.LLM == nil {
		return nil, domain.ErrProviderUnavailable
	}

	name := SanitizeName(req.Name)
	prompt := texts.FormatSection(focus, name, planetLines(req.Planets), ascendantLine(req.Ascendant))

	key := sectionCacheKey(req.Theme, name, prompt)
	if cached, ok := s.cachedInterpretation(ctx, key); ok {
		return cached, nil
	}

	md, err := s.complete(ctx, "section", service.Completion{
		System:      texts.SectionSystem,
		Prompt:      prompt,
		Temperature: sectionTemperature,
		MaxTokens:   sectionMaxTokens,
	})
	if err != nil {
		return nil, err
	}
	if md == "" {
		md = texts.SectionEmpty
	}

	html, err := markdown.ToHTML(md)
	if err != nil {
		return nil, err
	}

	result := &domain.Interpretation{
		HTML:     html,
		Markdown: md,
		Section:  focus,
	}
	s.storeInterpretation(ctx, key, result)
	return result, nil
}

// complete вызов LLM с метриками
func (s *Service) complete(ctx context.Context, operation string, req service.Completion) (string, error) {
	start := time.Now()
	text, err := s.LLM.Complete(ctx, req)
	s.Metrics.ObserveLLM(operation, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("llm %s: %w", operation, err)
	}
	return strings.TrimSpace(text), nil
}

func planetLines(planets []domain.Planet) []string {
	lines := make([]string, 0, len(planets))
	for _, p := range planets {
		lines = append(lines, texts.PlanetLine(p.Name, p.Sign, p.SignDegree))
	}
	return lines
}

func ascendantLine(asc *domain.Ascendant) string {
	if asc == nil || asc.Sign == "" {
		return ""
	}
	return texts.AscendantLine(asc.Sign, asc.Degree)
}

func sectionCacheKey(theme domain.Theme, name, prompt string) string {
	sum := sha256.Sum256([]byte(string(theme) + "|" + name + "|" + prompt))
	return "interpret:section:" + hex.EncodeToString(sum[:16])
}

func (s *Service) cachedInterpretation(ctx context.Context, key string) (*domain.Interpretation, bool) {
	if s.Cache == nil {
		return nil, false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("interpretation cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var result domain.Interpretation
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.Log.Warn("interpretation cache entry is corrupted", "key", key, "error", err)
		return nil, false
	}
	return &result, true
}

func (s *Service) storeInterpretation(ctx context.Context, key string, result *domain.Interpretation) {
	if s.Cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(raw), sectionCacheTTL); err != nil {
		s.Log.Warn("interpretation cache write failed", "key", key, "error", err)
	}
}
