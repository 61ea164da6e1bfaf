package report

import (
	"log/slog"
	"sync"
	"time"

	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/kafka"
	"github.com/admin/astrografia/internal/ports/repository"
	"github.com/admin/astrografia/internal/ports/storage"
	"github.com/admin/astrografia/internal/ports/usecase"
)

const (
	processTimeout = 5 * time.Minute
	downloadTTL    = 15 * time.Minute
	objectPrefix   = "reports/"
	htmlType       = "text/html; charset=utf-8"
)

// Service асинхронная генерация полных отчётов
type Service struct {
	Repo     repository.IReportRepo
	Astro    usecase.IAstroUseCase
	Writer   usecase.IReportWriter
	Producer kafka.IKafkaProducer // nil: обработка в фоне внутри процесса
	Storage  storage.IS3Client    // nil: HTML хранится в БД
	Metrics  *metrics.Collector
	Log      *slog.Logger

	wg  sync.WaitGroup
	now func() time.Time
}

func New(
	repo repository.IReportRepo,
	astro usecase.IAstroUseCase,
	writer usecase.IReportWriter,
	producer kafka.IKafkaProducer,
	s3 storage.IS3Client,
	m *metrics.Collector,
	log *slog.Logger,
) *Service {
	return &Service{
		Repo:     repo,
		Astro:    astro,
		Writer:   writer,
		Producer: producer,
		Storage:  s3,
		Metrics:  m,
		Log:      log,
		now:      time.Now,
	}
}

var _ usecase.IReportUseCase = (*Service)(nil)

// Wait дожидается фоновых генераций
func (s *Service) Wait() {
	s.wg.Wait()
}
