package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/logx"
	"service-dispatch/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type apiDeps struct {
	dig.In
	Ctx       context.Context
	Server    *http.Server
	Pool      *pgxpool.Pool
	Logger    logx.Logger
	Offers    *offerStore
	Publisher *kafka.Publisher
}

func run(container *dig.Container) error {
	return container.Invoke(apiRun)
}

func apiRun(d apiDeps) error {
	defer closeResources(d.Logger, d.Pool, d.Offers, d.Publisher)

	if err := migrate(d.Ctx, d.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	errCh := startServer(d.Server, d.Logger)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-d.Ctx.Done():
		d.Logger.Info("shutting down service-dispatch")
	}
	gracefulShutdown(d.Server, d.Logger, shutdownTimeout)
	return nil
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("service-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
		if err := srv.Close(); err != nil {
			logger.Error("server close error", logx.Err(err))
		}
	}
}

// closeResources releases everything the containers opened. Nil members are skipped.
func closeResources(logger logx.Logger, pool *pgxpool.Pool, store *offerStore, publisher *kafka.Publisher) {
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", logx.Err(err))
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("redis close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
