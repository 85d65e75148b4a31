package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/jobs"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the order intake and the expiry sweep
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun runs the worker until its context is done; any other failure panics
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerDeps struct {
	dig.In
	Ctx       context.Context
	Pool      *pgxpool.Pool
	Logger    logx.Logger
	Consumer  *kafka.Consumer
	Sweeper   *jobs.ExpirySweeper
	Offers    *offerStore
	Publisher *kafka.Publisher
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(d workerDeps) error {
	defer closeWorker(d)

	if err := migrate(d.Ctx, d.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := d.Sweeper.Start(d.Ctx); err != nil {
		return fmt.Errorf("expiry sweeper: %w", err)
	}

	d.Logger.Info("service-dispatch-worker started")
	if d.Consumer == nil {
		// без кафки воркер только чистит просроченные офферы
		d.Logger.Warn("kafka is not configured, order intake disabled")
		<-d.Ctx.Done()
		return d.Ctx.Err()
	}
	return d.Consumer.Run(d.Ctx)
}

func closeWorker(d workerDeps) {
	if d.Sweeper != nil {
		d.Sweeper.Stop()
	}
	if d.Consumer != nil {
		if err := d.Consumer.Close(); err != nil {
			d.Logger.Error("kafka consumer close error", logx.Err(err))
		}
	}
	closeResources(d.Logger, d.Pool, d.Offers, d.Publisher)
}
