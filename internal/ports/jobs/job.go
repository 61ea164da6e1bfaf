package jobs

import (
	"context"
	"time"
)

// Job периодическая задача планировщика
type Job interface {
	Name() string
	// NextRun момент следующего запуска после now
	NextRun(now time.Time) time.Time
	Run(ctx context.Context) error
}
