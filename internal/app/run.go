package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	if deps.KafkaConsumer != nil {
		g.Go(func() error {
			a.Log.Info("starting kafka consumer", "topic", a.Cfg.Kafka.Topic)
			return deps.KafkaConsumer.Start(gCtx)
		})
	}

	// Планировщик запускает горутины внутри и не блокирует
	if deps.JobScheduler != nil {
		a.Log.Info("starting job scheduler")
		if err := deps.JobScheduler.Start(gCtx); err != nil {
			a.Log.Error("failed to start job scheduler", "error", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if deps.KafkaConsumer != nil {
			if err := deps.KafkaConsumer.Close(); err != nil {
				a.Log.Error("failed to close kafka consumer", "error", err)
			}
		}

		// Фоновые генерации и джобы дописывают результат до закрытия БД
		if deps.ReportsService != nil {
			deps.ReportsService.Wait()
		}
		if deps.JobScheduler != nil {
			deps.JobScheduler.Wait()
		}

		if deps.KafkaProducer != nil {
			if err := deps.KafkaProducer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err)
			}
		}

		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				a.Log.Error("failed to close database", "error", err)
			}
		}

		if deps.Cache != nil {
			if err := deps.Cache.Close(); err != nil {
				a.Log.Error("failed to close cache", "error", err)
			}
		}

		a.Log.Info("shutdown completed")
		return nil
	})

	return g.Wait()
}
