// Package jobs holds scheduled background tasks of the dispatch worker.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"service-dispatch/internal/logx"
)

// Expirer closes offers whose deadline passed and settles their rounds.
type Expirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// ExpirySweeper runs Expirer on a cron schedule. Overlapping runs are skipped.
// Accept checks deadlines itself, so a slow or stopped sweeper only delays re-dispatch.
type ExpirySweeper struct {
	expirer  Expirer
	schedule string
	timeout  time.Duration
	logger   logx.Logger

	cron   *cron.Cron
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewExpirySweeper creates a sweeper. timeout bounds one run; 0 means no bound.
func NewExpirySweeper(expirer Expirer, schedule string, timeout time.Duration, logger logx.Logger) *ExpirySweeper {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ExpirySweeper{
		expirer:  expirer,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger.With(logx.String("component", "expiry_sweeper")),
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the sweep and returns immediately.
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return fmt.Errorf("expiry sweeper already started")
	}
	runCtx, cancel := context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(runCtx) }); err != nil {
		cancel()
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}
	s.cancel = cancel
	s.cron.Start()
	s.logger.Info("expiry sweeper started", logx.String("schedule", s.schedule))
	return nil
}

// Stop cancels the running sweep, if any, and waits for it to return.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("expiry sweeper stopped")
}

// RunOnce performs one sweep.
func (s *ExpirySweeper) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := s.expirer.ExpireStale(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", logx.Int("expired", n), logx.Err(err))
		return
	}
	if n > 0 {
		s.logger.Info("expiry sweep",
			logx.Event("offers_swept"),
			logx.Int("expired", n),
			logx.Duration("took", time.Since(start)),
		)
	}
}
