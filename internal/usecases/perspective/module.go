package perspective

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/repository"
	"github.com/admin/astrografia/internal/ports/usecase"
	"github.com/admin/astrografia/internal/usecases/interpret/texts"
)

const (
	DefaultAuthor  = "anonimo"
	maxAuthorRunes = 120
)

// Service перспективы: текст пользователя и сгенерированный отклик
type Service struct {
	Repo      repository.IPerspectiveRepo
	Interpret usecase.IInterpretUseCase
	Log       *slog.Logger

	now func() time.Time
}

func New(repo repository.IPerspectiveRepo, interpret usecase.IInterpretUseCase, log *slog.Logger) *Service {
	return &Service{
		Repo:      repo,
		Interpret: interpret,
		Log:       log,
		now:       time.Now,
	}
}

var _ usecase.IPerspectiveUseCase = (*Service)(nil)

// Add сохраняет перспективу вместе с откликом. Отказ генерации не мешает сохранению.
func (s *Service) Add(ctx context.Context, author, text string, chart *domain.Chart) (*domain.Perspective, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	response := texts.PerspectiveFailed
	interpretation, err := s.Interpret.Perspective(ctx, text, chart)
	if err != nil {
		s.Log.Warn("failed to interpret perspective", "error", err)
	} else {
		response = interpretation.Markdown
	}

	p := &domain.Perspective{
		ID:         uuid.New(),
		Author:     NormalizeAuthor(author),
		Text:       text,
		ResponseMD: response,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Log.Info("perspective saved", "perspective_id", p.ID, "author", p.Author)
	return p, nil
}

// List страница перспектив автора, новые первыми
func (s *Service) List(ctx context.Context, author string, page, perPage int) (*domain.PerspectivePage, error) {
	page, perPage = domain.NormalizePaging(page, perPage)
	author = NormalizeAuthor(author)

	total, err := s.Repo.CountByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	items := []*domain.Perspective{}
	// сравнение по числу страниц, смещение считается только для существующей
	if page-1 < (total+perPage-1)/perPage {
		items, err = s.Repo.ListByAuthor(ctx, author, perPage, (page-1)*perPage)
		if err != nil {
			return nil, err
		}
	}

	return &domain.PerspectivePage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// NormalizeAuthor пустой автор становится анонимным, длинный обрезается
func NormalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		return DefaultAuthor
	}
	if r := []rune(author); len(r) > maxAuthorRunes {
		author = string(r[:maxAuthorRunes])
	}
	return author
}
