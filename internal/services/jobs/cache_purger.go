package jobs

import (
	"context"
	"log/slog"
	"time"
)

const cachePurgerName = "cache-purger"

// Purger локальный кэш с ручной очисткой истёкших записей
type Purger interface {
	Purge() int
}

// CachePurger раз в interval удаляет истёкшие записи локального кэша
type CachePurger struct {
	cache    Purger
	interval time.Duration
	log      *slog.Logger
}

func NewCachePurger(cache Purger, interval time.Duration, log *slog.Logger) *CachePurger {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CachePurger{cache: cache, interval: interval, log: log}
}

func (j *CachePurger) Name() string {
	return cachePurgerName
}

func (j *CachePurger) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

func (j *CachePurger) Run(context.Context) error {
	if removed := j.cache.Purge(); removed > 0 {
		j.log.Debug("expired cache entries removed", "count", removed)
	}
	return nil
}
