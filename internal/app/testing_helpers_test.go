package app

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"service-dispatch/internal/domain"
)

// resetProcessFlags isolates config.Load from the test binary flags.
func resetProcessFlags(t *testing.T) {
	t.Helper()
	oldFlags := pflag.CommandLine
	oldArgs := os.Args
	pflag.CommandLine = pflag.NewFlagSet(oldArgs[0], pflag.ContinueOnError)
	os.Args = []string{oldArgs[0]}
	t.Cleanup(func() {
		pflag.CommandLine = oldFlags
		os.Args = oldArgs
	})
}

// offlineEnv keeps the containers away from Kafka and Redis.
func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KAFKA_BROKERS", ",")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PORT", "")
}

func withRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	old := metricsRegisterer
	metricsRegisterer = reg
	t.Cleanup(func() { metricsRegisterer = old })
	return reg
}

func withStubMigrate(t *testing.T, err error) *int {
	t.Helper()
	calls := 0
	old := migrate
	migrate = func(context.Context, *pgxpool.Pool) error {
		calls++
		return err
	}
	t.Cleanup(func() { migrate = old })
	return &calls
}

type fakePort struct {
	mu         sync.Mutex
	dispatched []string
	cancelled  []string
	lastCtx    context.Context
}

func (f *fakePort) Dispatch(ctx context.Context, orderID string) (domain.RoundResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCtx = ctx
	f.dispatched = append(f.dispatched, orderID)
	return domain.RoundResult{OrderID: orderID, Offered: []int64{1}}, nil
}

func (f *fakePort) CancelRound(ctx context.Context, orderID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCtx = ctx
	f.cancelled = append(f.cancelled, orderID)
	return 0, nil
}

type countingExpirer struct {
	mu    sync.Mutex
	calls int
}

func (e *countingExpirer) ExpireStale(context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	return 0, nil
}
