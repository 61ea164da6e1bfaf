package jobs

import (
	"context"
	"log/slog"
	"time"
)

const positionsUpdaterName = "positions-updater"

// PositionsCache пересчитывает текущее небо в кэше
type PositionsCache interface {
	UpdateCachedPositions(ctx context.Context, at time.Time) error
}

// PositionsUpdater джоба для обновления позиций планет в кеше, каждый день в 05:00 по Бразилиа
type PositionsUpdater struct {
	astro    PositionsCache
	log      *slog.Logger
	location *time.Location
	now      func() time.Time
}

// NewPositionsUpdater создаёт новую джобу для обновления позиций планет
func NewPositionsUpdater(astro PositionsCache, log *slog.Logger) *PositionsUpdater {
	location, _ := time.LoadLocation("America/Sao_Paulo")
	if location == nil {
		location = time.FixedZone("BRT", -3*60*60)
	}

	return &PositionsUpdater{
		astro:    astro,
		log:      log,
		location: location,
		now:      time.Now,
	}
}

func (j *PositionsUpdater) Name() string {
	return positionsUpdaterName
}

// NextRun ближайшие 05:00 по местному времени строго после now
func (j *PositionsUpdater) NextRun(now time.Time) time.Time {
	local := now.In(j.location)

	next := time.Date(local.Year(), local.Month(), local.Day(), 5, 0, 0, 0, j.location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, 5, 0, 0, 0, j.location)
	}
	return next
}

// Run выполняет обновление текущих позиций планет в кеше
func (j *PositionsUpdater) Run(ctx context.Context) error {
	return j.astro.UpdateCachedPositions(ctx, j.now().In(j.location))
}
