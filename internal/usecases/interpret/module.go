package interpret

import (
	"log/slog"
	"time"

	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/cache"
	"github.com/admin/astrografia/internal/ports/service"
	"github.com/admin/astrografia/internal/ports/usecase"
)

const (
	sectionTemperature = 0.7
	sectionMaxTokens   = 400
	reportTemperature  = 0.7
	reportMaxTokens    = 3000
	perspectiveTokens  = 500

	sectionCacheTTL = 7 * 24 * time.Hour
)

// Service тексты интерпретаций через LLM
type Service struct {
	LLM     service.ILLMService // nil, если ключ не задан
	Cache   cache.Cache         // nil, если кэш выключен
	Metrics *metrics.Collector
	Log     *slog.Logger
}

func New(llm service.ILLMService, c cache.Cache, m *metrics.Collector, log *slog.Logger) *Service {
	return &Service{
		LLM:     llm,
		Cache:   c,
		Metrics: m,
		Log:     log,
	}
}

var _ usecase.IInterpretUseCase = (*Service)(nil)
