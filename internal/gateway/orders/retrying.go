package order

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/retry"
)

// Gateway is the order collaborator used by dispatch.
type Gateway interface {
	GetPickupLocation(ctx context.Context, orderID string) (domain.Point, error)
	SetAssignedCourier(ctx context.Context, orderID string, courierID int64) error
	SetStatus(ctx context.Context, orderID string, status Status) error
}

// RetryingGateway повторяет вызовы next при временных ошибках БД
type RetryingGateway struct {
	next    Gateway
	logger  logx.Logger
	retries retry.Counter
	cfg     retry.Config
}

// NewRetryingGateway конструктор который проверяет, что next не nil и возвращает RetryingGateway
func NewRetryingGateway(next Gateway, logger logx.Logger, retries retry.Counter, cfg retry.Config) *RetryingGateway {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// GetPickupLocation реализует поведение RetryingGateway
func (g *RetryingGateway) GetPickupLocation(ctx context.Context, orderID string) (domain.Point, error) {
	var p domain.Point
	err := g.do(ctx, "GetPickupLocation", func() error {
		var err error
		p, err = g.next.GetPickupLocation(ctx, orderID)
		return err
	})
	return p, err
}

// SetAssignedCourier реализует поведение RetryingGateway
func (g *RetryingGateway) SetAssignedCourier(ctx context.Context, orderID string, courierID int64) error {
	return g.do(ctx, "SetAssignedCourier", func() error {
		return g.next.SetAssignedCourier(ctx, orderID, courierID)
	})
}

// SetStatus реализует поведение RetryingGateway
func (g *RetryingGateway) SetStatus(ctx context.Context, orderID string, status Status) error {
	return g.do(ctx, "SetStatus", func() error {
		return g.next.SetStatus(ctx, orderID, status)
	})
}

func (g *RetryingGateway) do(ctx context.Context, method string, fn func() error) error {
	return retry.Do(ctx, g.cfg, repository.IsTransient, func(attempt int, delay time.Duration, err error) {
		if g.retries != nil {
			g.retries.Inc()
		}
		// выводим лог о повторе
		g.logger.Warn("orders gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
	}, fn)
}
