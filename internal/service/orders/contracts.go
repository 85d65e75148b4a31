//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-dispatch/internal/domain"
)

// DispatchPort is the subset of the assignment engine driven by order events.
type DispatchPort interface {
	Dispatch(ctx context.Context, orderID string) (domain.RoundResult, error)
	CancelRound(ctx context.Context, orderID string) (int, error)
}
