// Package dispatch matches ready orders with nearby couriers: it opens time-boxed
// offers to a few ranked candidates and resolves their answers into exactly one
// assignment, re-dispatching once with a wider radius when everybody declines.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/offers"
	"service-dispatch/internal/retry"
)

// Deps are the collaborators of the engine.
type Deps struct {
	Ledger   Ledger
	Offers   OfferStore
	Index    CourierIndex
	Couriers CourierStore
	Orders   OrderGateway
	Notifier Notifier
	Metrics  *metrics.Dispatch
	Retries  retry.Counter
	Logger   logx.Logger
}

// Service is the assignment engine.
type Service struct {
	ledger   Ledger
	offers   OfferStore
	index    CourierIndex
	couriers CourierStore
	orders   OrderGateway
	notifier Notifier
	metrics  *metrics.Dispatch
	retries  retry.Counter
	logger   logx.Logger

	cfg   Config
	locks keyedMutex
	now   func() time.Time
}

// New creates the engine. Zero config fields fall back to DefaultConfig.
func New(d Deps, cfg Config) *Service {
	if d.Notifier == nil {
		d.Notifier = nopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	return &Service{
		ledger:   d.Ledger,
		offers:   d.Offers,
		index:    d.Index,
		couriers: d.Couriers,
		orders:   d.Orders,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		retries:  d.Retries,
		logger:   d.Logger,
		cfg:      cfg.withDefaults(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source; intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OperationTimeout)
}

// store runs a ledger or offer-store call with retries. Infrastructure errors that
// survive the retry budget are wrapped in apperr.ErrStoreFailure.
func (s *Service) store(ctx context.Context, op string, fn func() error) error {
	err := retry.Do(ctx, s.cfg.Retry, isRetryable, func(attempt int, delay time.Duration, err error) {
		if s.retries != nil {
			s.retries.Inc()
		}
		s.logger.Warn("store retry",
			logx.String("op", op),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
	}, fn)
	return storeErr(op, err)
}

func storeErr(op string, err error) error {
	if err == nil || !isRetryable(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrStoreFailure, err)
}

func isRetryable(err error) bool {
	return !apperr.IsDomain(err) &&
		!errors.Is(err, apperr.ErrStoreFailure) &&
		!errors.Is(err, offers.ErrAlreadyOpen) &&
		!errors.Is(err, context.Canceled)
}

// roundStep applies ev to a round. The transition table is closed, so an error here is an engine bug.
func roundStep(from domain.RoundState, ev domain.RoundEvent) domain.RoundState {
	next, err := domain.NextRoundState(from, ev)
	if err != nil {
		panic(err)
	}
	return next
}

func validateOrderID(raw string) (string, error) {
	orderID := strings.TrimSpace(raw)
	if orderID == "" {
		return "", fmt.Errorf("empty order id: %w", apperr.ErrInvalid)
	}
	return orderID, nil
}

func validateCourierID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("courier id %d: %w", id, apperr.ErrInvalid)
	}
	return nil
}
