package perspectiveRepo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/persistence"
	ports "github.com/admin/astrografia/internal/ports/repository"
)

type perspectiveColumns struct {
	TableName  string
	ID         string
	Author     string
	Text       string
	ResponseMD string
	CreatedAt  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns perspectiveColumns
}

func New(db persistence.Persistence, log *slog.Logger) ports.IPerspectiveRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: perspectiveColumns{
			TableName:  "perspectives",
			ID:         "id",
			Author:     "author",
			Text:       "text",
			ResponseMD: "response_md",
			CreatedAt:  "created_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Author,
		r.columns.Text,
		r.columns.ResponseMD,
		r.columns.CreatedAt)
}

func (r *Repository) Create(ctx context.Context, p *domain.Perspective) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		p.ID,
		p.Author,
		p.Text,
		p.ResponseMD,
		p.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create perspective",
			"error", err,
			"perspective_id", p.ID)
		return fmt.Errorf("failed to create perspective: %w", err)
	}
	r.Log.Debug("perspective created successfully", "perspective_id", p.ID)
	return nil
}

// ListByAuthor страница перспектив автора, новые первыми
func (r *Repository) ListByAuthor(ctx context.Context, author string, limit, offset int) ([]*domain.Perspective, error) {
	items := []*domain.Perspective{}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC LIMIT $2 OFFSET $3`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Author,
		r.columns.CreatedAt,
		r.columns.ID)
	if err := r.db.Select(ctx, &items, query, author, limit, offset); err != nil {
		r.Log.Error("failed to list perspectives",
			"error", err,
			"author", author)
		return nil, fmt.Errorf("failed to list perspectives: %w", err)
	}
	return items, nil
}

func (r *Repository) CountByAuthor(ctx context.Context, author string) (int, error) {
	var total int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.Author)
	if err := r.db.Get(ctx, &total, query, author); err != nil {
		r.Log.Error("failed to count perspectives",
			"error", err,
			"author", author)
		return 0, fmt.Errorf("failed to count perspectives: %w", err)
	}
	return total, nil
}
