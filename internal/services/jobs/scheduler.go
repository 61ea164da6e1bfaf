package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/admin/astrografia/internal/pkg/metrics"
	"github.com/admin/astrografia/internal/ports/jobs"
)

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs    []jobs.Job
	metrics *metrics.Collector
	log     *slog.Logger

	// паузы между повторными попытками: now + 1m + 10m + 30m
	retries []time.Duration
	wg      sync.WaitGroup
}

// NewScheduler создаёт новый планировщик джоб
func NewScheduler(log *slog.Logger, m *metrics.Collector) *Scheduler {
	return &Scheduler{
		jobs:    make([]jobs.Job, 0),
		metrics: m,
		log:     log,
		retries: []time.Duration{
			1 * time.Minute,
			10 * time.Minute,
			30 * time.Minute,
		},
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы; они останавливаются вместе с ctx
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		job := job
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}

	return nil
}

// Wait дожидается остановки всех джоб
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// runJob запускает отдельную джобу в цикле
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := time.Now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			err := s.executeJobWithRetry(ctx, job)
			s.metrics.JobFinished(jobName, err)
			if err != nil {
				s.log.Error("job failed after all retries", "job_name", jobName, "error", err)
			} else {
				s.log.Info("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// executeJobWithRetry выполняет джобу, при ошибках повторяет с паузами из s.retries.
// Итоговая ошибка объединяет ошибки всех попыток.
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) error {
	jobName := job.Name()
	var attemptErrors []error

	for attempt := 1; ; attempt++ {
		err := job.Run(ctx)
		if err == nil {
			return nil
		}
		attemptErrors = append(attemptErrors, fmt.Errorf("attempt %d: %w", attempt, err))

		if attempt > len(s.retries) {
			break
		}

		s.log.Warn("job execution failed, will retry",
			"job_name", jobName,
			"attempt", attempt,
			"retries_remaining", len(s.retries)-attempt+1,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return errors.Join(append(attemptErrors, ctx.Err())...)
		case <-time.After(s.retries[attempt-1]):
		}
	}

	return fmt.Errorf("all retry attempts failed (total attempts: %d): %w", len(attemptErrors), errors.Join(attemptErrors...))
}
