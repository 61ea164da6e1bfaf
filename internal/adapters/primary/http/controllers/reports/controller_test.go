package reportsController

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/admin/astrografia/internal/domain"
)

type fakeReports struct {
	known uuid.UUID
	req   domain.ReportRequest
	err   error
}

func (f *fakeReports) Request(_ context.Context, req domain.ReportRequest) (*domain.Report, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	return &domain.Report{ID: f.known, Name: req.Name, Status: domain.ReportPending}, nil
}

func (f *fakeReports) Get(_ context.Context, id uuid.UUID) (*domain.Report, error) {
	if id != f.known {
		return nil, domain.ErrNotFound
	}
	return &domain.Report{ID: id, Status: domain.ReportDone, DownloadURL: "https://minio.local/x"}, nil
}

func (f *fakeReports) Document(_ context.Context, id uuid.UUID) ([]byte, error) {
	if id != f.known {
		return nil, domain.ErrNotFound
	}
	return []byte("<!DOCTYPE html><title>Mapa astral de Ana</title>"), nil
}

func newRouter(f *fakeReports) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(f, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r
}

func TestRequestReport(t *testing.T) {
	f := &fakeReports{known: uuid.New()}
	r := newRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"name":"Ana","birthDate":"1990-06-15","birthTime":"14:30","birthPlace":"São Paulo"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.req.BirthPlace != "São Paulo" || f.req.BirthTime != "14:30" {
		t.Fatalf("request not mapped: %+v", f.req)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "pending" || body["id"] != f.known.String() {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRequestReportErrors(t *testing.T) {
	r := newRouter(&fakeReports{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"birthDate":"1990-06-15"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Dados incompletos.") {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}

	failing := newRouter(&fakeReports{err: errors.New("db down")})
	rec = httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"name":"Ana"}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGetReport(t *testing.T) {
	f := &fakeReports{known: uuid.New()}
	r := newRouter(f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+f.known.String(), nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"download_url":"https://minio.local/x"`) {
		t.Fatalf("unexpected %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportDocument(t *testing.T) {
	f := &fakeReports{known: uuid.New()}
	r := newRouter(f)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+f.known.String()+"/html", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Fatalf("unexpected %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Mapa astral de Ana") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
