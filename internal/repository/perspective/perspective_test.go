package perspectiveRepo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/admin/astrografia/internal/adapters/secondary/storage/pg"
	"github.com/admin/astrografia/internal/domain"
	ports "github.com/admin/astrografia/internal/ports/repository"
)

func newRepo(t *testing.T) (ports.IPerspectiveRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := New(pg.NewDB(sqlx.NewDb(db, "sqlmock")), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return repo, mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	p := &domain.Perspective{
		ID:         uuid.New(),
		Author:     "ana",
		Text:       "Sinto que estou mudando.",
		ResponseMD: "<p>ok</p>",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO perspectives (id, author, text, response_md, created_at) VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(p.ID, p.Author, p.Text, p.ResponseMD, p.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateError(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("INSERT INTO perspectives").WillReturnError(errors.New("disk full"))

	if err := repo.Create(context.Background(), &domain.Perspective{ID: uuid.New()}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListByAuthor(t *testing.T) {
	repo, mock := newRepo(t)
	newer, older := uuid.New(), uuid.New()
	now := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "author", "text", "response_md", "created_at"}).
		AddRow(newer.String(), "ana", "segunda", "md2", now).
		AddRow(older.String(), "ana", "primeira", "md1", now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, author, text, response_md, created_at FROM perspectives WHERE author = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`)).
		WithArgs("ana", 10, 0).
		WillReturnRows(rows)

	items, err := repo.ListByAuthor(context.Background(), "ana", 10, 0)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(items) != 2 || items[0].ID != newer || items[1].Text != "primeira" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListByAuthorEmpty(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM perspectives").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author", "text", "response_md", "created_at"}))

	items, err := repo.ListByAuthor(context.Background(), "ninguem", 10, 0)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestCountByAuthor(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM perspectives WHERE author = $1`)).
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))

	total, err := repo.CountByAuthor(context.Background(), "ana")
	if err != nil {
		t.Fatalf("CountByAuthor: %v", err)
	}
	if total != 23 {
		t.Fatalf("total = %d", total)
	}
}
