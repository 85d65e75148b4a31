// Package retry runs store calls with capped exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config описывает политику повторов
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Counter is incremented once per scheduled retry.
type Counter interface {
	Inc()
}

// NotifyFunc is called before sleeping ahead of the next attempt.
type NotifyFunc func(attempt int, delay time.Duration, err error)

// Do calls fn until it succeeds, fails with an error retryable rejects, MaxAttempts is
// reached or ctx is done. The last error is returned unchanged.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, notify NotifyFunc, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.BaseDelay
	exp.MaxInterval = cfg.MaxDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()

	var b backoff.BackOff = &backoff.StopBackOff{}
	if cfg.MaxAttempts > 1 {
		b = backoff.WithMaxRetries(exp, uint64(cfg.MaxAttempts-1))
	}

	attempt := 0
	op := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, d time.Duration) { notify(attempt, d, err) }
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), onRetry)
}
