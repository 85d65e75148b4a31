package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/repository"
)

// Status is the order status as seen by the order service.
type Status string

// Statuses written by dispatch.
const (
	StatusAssigned  Status = "ASSIGNED"
	StatusPickedUp  Status = "PICKED_UP"
	StatusDelivered Status = "DELIVERED"
)

// PostgresGateway reaches the order collaborator through the shared orders table.
type PostgresGateway struct {
	db *pgxpool.Pool
}

// NewPostgresGateway creates an orders gateway backed by Postgres.
func NewPostgresGateway(db *pgxpool.Pool) *PostgresGateway {
	if db == nil {
		return nil
	}
	return &PostgresGateway{db: db}
}

// GetPickupLocation returns the restaurant pickup point of the order.
func (g *PostgresGateway) GetPickupLocation(ctx context.Context, orderID string) (domain.Point, error) {
	var p domain.Point
	err := g.db.QueryRow(ctx,
		`SELECT pickup_lat, pickup_lon FROM orders WHERE id = $1`, orderID,
	).Scan(&p.Lat, &p.Lon)
	if err != nil {
		if repository.IsNotFound(err) {
			return p, fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
		}
		return p, fmt.Errorf("order gateway: GetPickupLocation: %w", err)
	}
	return p, nil
}

// SetAssignedCourier advances the order to ASSIGNED with the winning courier.
func (g *PostgresGateway) SetAssignedCourier(ctx context.Context, orderID string, courierID int64) error {
	ct, err := g.db.Exec(ctx, `
        UPDATE orders
        SET status = $2, courier_id = $3, updated_at = now()
        WHERE id = $1
    `, orderID, string(StatusAssigned), courierID)
	if err != nil {
		return fmt.Errorf("order gateway: SetAssignedCourier: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}

// SetStatus moves the order to status.
func (g *PostgresGateway) SetStatus(ctx context.Context, orderID string, status Status) error {
	ct, err := g.db.Exec(ctx, `
        UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
    `, orderID, string(status))
	if err != nil {
		return fmt.Errorf("order gateway: SetStatus: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}
