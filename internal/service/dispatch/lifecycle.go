package dispatch

import (
	"context"
	"fmt"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	order "service-dispatch/internal/gateway/orders"
	"service-dispatch/internal/logx"
)

// Paging limits of CourierAssignments.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// MarkPickedUp records that the winning courier collected the order. The ledger step is
// idempotent for that courier, so a call that failed on the order status can be repeated.
func (s *Service) MarkPickedUp(ctx context.Context, orderID string, courierID int64) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}
	if err := validateCourierID(courierID); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store(ctx, "mark picked up", func() error {
		return s.ledger.MarkPickedUp(ctx, orderID, courierID, s.now())
	}); err != nil {
		return err
	}
	if err := s.orders.SetStatus(ctx, orderID, order.StatusPickedUp); err != nil {
		return storeErr("set order status", err)
	}

	s.logger.Info("order picked up",
		logx.Event("order_picked_up"),
		logx.OrderID(orderID),
		logx.CourierID(courierID),
	)
	return nil
}

// MarkDelivered completes the winning courier's assignment. Like MarkPickedUp it may be
// repeated until the order status is updated.
func (s *Service) MarkDelivered(ctx context.Context, orderID string, courierID int64) error {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return err
	}
	if err := validateCourierID(courierID); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store(ctx, "complete", func() error {
		return s.ledger.Complete(ctx, orderID, courierID, s.now())
	}); err != nil {
		return err
	}
	if err := s.orders.SetStatus(ctx, orderID, order.StatusDelivered); err != nil {
		return storeErr("set order status", err)
	}

	s.logger.Info("order delivered",
		logx.Event("order_delivered"),
		logx.OrderID(orderID),
		logx.CourierID(courierID),
	)
	return nil
}

// CourierAssignments lists a courier's assignments, newest first.
// No statuses means PENDING and ACCEPTED; limit 0 means DefaultPageLimit.
func (s *Service) CourierAssignments(ctx context.Context, courierID int64, statuses []domain.AssignmentStatus, limit, offset int) ([]domain.Assignment, error) {
	if err := validateCourierID(courierID); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		statuses = domain.ActiveStatuses()
	}
	for _, st := range statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("status %q: %w", st, apperr.ErrInvalid)
		}
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 0 || limit > MaxPageLimit || offset < 0 {
		return nil, fmt.Errorf("limit %d offset %d: %w", limit, offset, apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out []domain.Assignment
	err := s.store(ctx, "list assignments", func() error {
		var err error
		out, err = s.ledger.ListByCourier(ctx, courierID, statuses, limit, offset)
		return err
	})
	return out, err
}

// Assignment returns one ledger row by ID.
func (s *Service) Assignment(ctx context.Context, id int64) (domain.Assignment, error) {
	if id <= 0 {
		return domain.Assignment{}, fmt.Errorf("assignment id %d: %w", id, apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var a domain.Assignment
	err := s.store(ctx, "get assignment", func() error {
		var err error
		a, err = s.ledger.Get(ctx, id)
		return err
	})
	return a, err
}

// UpdateLocation stores a position ping from a courier device.
func (s *Service) UpdateLocation(ctx context.Context, courierID int64, loc domain.Point, online bool) error {
	if err := validateCourierID(courierID); err != nil {
		return err
	}
	if !loc.Valid() {
		return fmt.Errorf("location %v: %w", loc, apperr.ErrInvalid)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ping := domain.LocationPing{
		CourierID:  courierID,
		Location:   loc,
		Online:     online,
		RecordedAt: s.now(),
	}
	return s.store(ctx, "upsert location", func() error {
		return s.couriers.UpsertLocation(ctx, ping)
	})
}

// CourierSnapshot returns the courier's last position, rating and current load.
func (s *Service) CourierSnapshot(ctx context.Context, courierID int64) (domain.CourierSnapshot, error) {
	if err := validateCourierID(courierID); err != nil {
		return domain.CourierSnapshot{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var snap domain.CourierSnapshot
	if err := s.store(ctx, "courier snapshot", func() error {
		var err error
		snap, err = s.couriers.Snapshot(ctx, courierID)
		return err
	}); err != nil {
		return domain.CourierSnapshot{}, err
	}

	var counts map[int64]int
	if err := s.store(ctx, "active counts", func() error {
		var err error
		counts, err = s.ledger.ActiveCounts(ctx, []int64{courierID}, s.now())
		return err
	}); err != nil {
		return domain.CourierSnapshot{}, err
	}
	snap.ActiveAssignments = counts[courierID]
	return snap, nil
}
