package reportRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
	"github.com/admin/astrografia/internal/ports/persistence"
	ports "github.com/admin/astrografia/internal/ports/repository"
)

type reportColumns struct {
	TableName    string
	ID           string
	Name         string
	BirthDate    string
	BirthTime    string
	BirthPlace   string
	Status       string
	Chart        string
	Markdown     string
	HTML         string
	ObjectKey    string
	ErrorMessage string
	CreatedAt    string
	UpdatedAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns reportColumns
}

func New(db persistence.Persistence, log *slog.Logger) ports.IReportRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: reportColumns{
			TableName:    "reports",
			ID:           "id",
			Name:         "name",
			BirthDate:    "birth_date",
			BirthTime:    "birth_time",
			BirthPlace:   "birth_place",
			Status:       "status",
			Chart:        "chart",
			Markdown:     "markdown",
			HTML:         "html",
			ObjectKey:    "object_key",
			ErrorMessage: "error_message",
			CreatedAt:    "created_at",
			UpdatedAt:    "updated_at",
		},
	}
}

func (r *Repository) allColumns() string {
	c := r.columns
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		c.ID, c.Name, c.BirthDate, c.BirthTime, c.BirthPlace, c.Status,
		c.Chart, c.Markdown, c.HTML, c.ObjectKey, c.ErrorMessage, c.CreatedAt, c.UpdatedAt)
}

func (r *Repository) Create(ctx context.Context, report *domain.Report) error {
	c := r.columns
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.TableName, c.ID, c.Name, c.BirthDate, c.BirthTime, c.BirthPlace, c.Status, c.CreatedAt, c.UpdatedAt)
	err := r.db.Exec(ctx, query,
		report.ID,
		report.Name,
		report.BirthDate,
		report.BirthTime,
		report.BirthPlace,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create report",
			"error", err,
			"report_id", report.ID)
		return fmt.Errorf("failed to create report: %w", err)
	}
	r.Log.Debug("report created successfully", "report_id", report.ID)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	if err := r.db.Get(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("report not found", "report_id", id)
			return nil, fmt.Errorf("report %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get report by id",
			"error", err,
			"report_id", id)
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return &report, nil
}

func (r *Repository) Claim(ctx context.Context, id uuid.UUID, staleBefore time.Time) (bool, error) {
	c := r.columns
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NULL, %s = NOW() WHERE %s = $2 AND (%s IN ($3, $4) OR (%s = $1 AND %s < $5))`,
		c.TableName, c.Status, c.ErrorMessage, c.UpdatedAt, c.ID, c.Status, c.Status, c.UpdatedAt)
	affected, err := r.db.ExecWithResult(ctx, query,
		domain.ReportProcessing,
		id,
		domain.ReportPending,
		domain.ReportFailed,
		staleBefore)
	if err != nil {
		r.Log.Error("failed to claim report",
			"error", err,
			"report_id", id)
		return false, fmt.Errorf("failed to claim report: %w", err)
	}
	return affected > 0, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus, errMsg *string) error {
	c := r.columns
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3`,
		c.TableName, c.Status, c.ErrorMessage, c.UpdatedAt, c.ID)
	affected, err := r.db.ExecWithResult(ctx, query, status, errMsg, id)
	if err != nil {
		r.Log.Error("failed to update report status",
			"error", err,
			"report_id", id,
			"status", status.String())
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("report %s: %w", id, domain.ErrNotFound)
	}
	r.Log.Debug("report status updated", "report_id", id, "status", status.String())
	return nil
}

// SaveResult отчёт должен быть в processing, иначе результат отбрасывается
func (r *Repository) SaveResult(ctx context.Context, report *domain.Report) error {
	c := r.columns
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		var current domain.ReportStatus
		lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
			c.Status, c.TableName, c.ID)
		if err := tx.Get(ctx, &current, lockQuery, report.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("report %s: %w", report.ID, domain.ErrNotFound)
			}
			return fmt.Errorf("failed to lock report: %w", err)
		}
		if current != domain.ReportProcessing {
			return domain.WrapBusinessError(fmt.Errorf("report %s is %s, result discarded", report.ID, current))
		}

		query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NULL, %s = NOW() WHERE %s = $6`,
			c.TableName, c.Status, c.Chart, c.Markdown, c.HTML, c.ObjectKey, c.ErrorMessage, c.UpdatedAt, c.ID)
		if err := tx.Exec(ctx, query,
			domain.ReportDone,
			report.Chart,
			report.Markdown,
			report.HTML,
			report.ObjectKey,
			report.ID); err != nil {
			r.Log.Error("failed to save report result",
				"error", err,
				"report_id", report.ID)
			return fmt.Errorf("failed to save report result: %w", err)
		}

		r.Log.Debug("report result saved", "report_id", report.ID)
		return nil
	})
}
