//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"service-dispatch/internal/domain"
	order "service-dispatch/internal/gateway/orders"
)

// Ledger is the durable assignment store. Every method that changes a row is conditional
// on the row's current status, so concurrent callers cannot both succeed.
type Ledger interface {
	CreatePending(ctx context.Context, a *domain.Assignment) error
	OrderState(ctx context.Context, orderID string, now time.Time) (domain.OrderAssignmentState, error)
	RejectedCouriers(ctx context.Context, orderID string) ([]int64, error)
	ActiveCounts(ctx context.Context, courierIDs []int64, now time.Time) (map[int64]int, error)
	AcceptIfNoWinner(ctx context.Context, orderID string, courierID int64, now time.Time) (bool, []int64, error)
	Reject(ctx context.Context, orderID string, courierID int64, reason string, now time.Time) (domain.Assignment, error)
	ExpirePending(ctx context.Context, now time.Time) ([]domain.Assignment, error)
	ExpireOrder(ctx context.Context, orderID string, now time.Time) ([]domain.Assignment, error)
	CancelOrder(ctx context.Context, orderID, reason string, now time.Time) ([]int64, error)
	MarkPickedUp(ctx context.Context, orderID string, courierID int64, now time.Time) error
	Complete(ctx context.Context, orderID string, courierID int64, now time.Time) error
	ListByCourier(ctx context.Context, courierID int64, statuses []domain.AssignmentStatus, limit, offset int) ([]domain.Assignment, error)
	Get(ctx context.Context, id int64) (domain.Assignment, error)
	// SettleRound marks the round as handled: re-dispatched, reported as unassigned or exhausted.
	SettleRound(ctx context.Context, orderID string, round int, now time.Time) error
	// UnsettledRounds returns, per order, one row of a latest round that ended without a
	// winner, was never settled and saw its last refusal at or before the given time.
	UnsettledRounds(ctx context.Context, before time.Time, limit int) ([]domain.Assignment, error)
}

// OfferStore holds the ephemeral offers of an order.
type OfferStore interface {
	OpenOffers(ctx context.Context, orderID string, courierIDs []int64, ttl time.Duration) error
	IsLive(ctx context.Context, orderID string, courierID int64) (bool, error)
	CloseAll(ctx context.Context, orderID string) error
}

// CourierIndex finds couriers around a point.
type CourierIndex interface {
	FindNearby(ctx context.Context, origin domain.Point, radiusKm float64) ([]domain.CourierSnapshot, error)
}

// CourierStore reads and writes per-courier state.
type CourierStore interface {
	Snapshot(ctx context.Context, courierID int64) (domain.CourierSnapshot, error)
	UpsertLocation(ctx context.Context, p domain.LocationPing) error
}

// OrderGateway is the order collaborator.
type OrderGateway interface {
	GetPickupLocation(ctx context.Context, orderID string) (domain.Point, error)
	SetAssignedCourier(ctx context.Context, orderID string, courierID int64) error
	SetStatus(ctx context.Context, orderID string, status order.Status) error
}

// Notifier publishes engine events. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Notification) {}
