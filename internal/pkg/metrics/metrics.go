package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector метрики сервиса. Все методы безопасны для nil-получателя,
// чтобы метрики можно было не передавать в тестах.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Charts          *prometheus.CounterVec
	ProviderErrors  *prometheus.CounterVec
	GeocoderLookups *prometheus.CounterVec
	LLMDurations    *prometheus.HistogramVec
	LLMErrors       *prometheus.CounterVec
	Reports         *prometheus.CounterVec
	JobRuns         *prometheus.CounterVec
}

// New регистрирует метрики в reg, по умолчанию в глобальном реестре
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.HTTPRequests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_http_requests_total",
		Help: "Handled HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})); err != nil {
		return nil, err
	}

	if c.HTTPDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "astrografia_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}

	if c.Charts, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_charts_total",
		Help: "Charts served by source (api or fallback).",
	}, []string{"source"})); err != nil {
		return nil, err
	}

	if c.ProviderErrors, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_precise_provider_errors_total",
		Help: "Precise ephemeris provider failures that triggered the fallback.",
	}, []string{"kind"})); err != nil {
		return nil, err
	}

	if c.GeocoderLookups, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_geocoder_lookups_total",
		Help: "Geocoding lookups by provider and result.",
	}, []string{"provider", "result"})); err != nil {
		return nil, err
	}

	if c.LLMDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "astrografia_llm_request_duration_seconds",
		Help:    "LLM completion latency in seconds.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"operation"})); err != nil {
		return nil, err
	}

	if c.LLMErrors, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_llm_errors_total",
		Help: "Failed LLM completions by operation.",
	}, []string{"operation"})); err != nil {
		return nil, err
	}

	if c.Reports, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_reports_total",
		Help: "Full reports by final status.",
	}, []string{"status"})); err != nil {
		return nil, err
	}

	if c.JobRuns, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "astrografia_job_runs_total",
		Help: "Scheduled job executions by job and result.",
	}, []string{"job", "result"})); err != nil {
		return nil, err
	}

	return c, nil
}

// Handler обработчик /metrics
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.HTTPRequests.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
	c.HTTPDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) ChartServed(source string) {
	if c == nil {
		return
	}
	c.Charts.WithLabelValues(source).Inc()
}

func (c *Collector) ProviderFailed(kind string) {
	if c == nil {
		return
	}
	c.ProviderErrors.WithLabelValues(kind).Inc()
}

func (c *Collector) GeocoderLookup(provider, result string) {
	if c == nil {
		return
	}
	c.GeocoderLookups.WithLabelValues(provider, result).Inc()
}

func (c *Collector) ObserveLLM(operation string, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.LLMDurations.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		c.LLMErrors.WithLabelValues(operation).Inc()
	}
}

func (c *Collector) ReportFinished(status string) {
	if c == nil {
		return
	}
	c.Reports.WithLabelValues(status).Inc()
}

func (c *Collector) JobFinished(job string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.JobRuns.WithLabelValues(job, result).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register counter: %w", err)
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register histogram: %w", err)
	}
	return vec, nil
}
