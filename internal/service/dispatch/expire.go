package dispatch

import (
	"context"
	"errors"
	"fmt"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// ExpireStale moves every PENDING assignment past its offer expiry to REJECTED and applies
// the re-dispatch rule to each affected order. It then settles rounds whose follow-up was
// lost, for example when the store failed right after the last refusal was committed.
// Accept never depends on this sweep: an expired offer is refused by the ledger on its own.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	now := s.now()

	sweepCtx, cancel := s.withTimeout(ctx)
	var rows []domain.Assignment
	err := s.store(sweepCtx, "expire pending", func() error {
		var err error
		rows, err = s.ledger.ExpirePending(sweepCtx, now)
		return err
	})
	cancel()
	if err != nil {
		return 0, err
	}
	s.reportExpired(ctx, rows)

	// по одной строке на заказ, из последнего раунда
	latest := make(map[string]domain.Assignment)
	orderIDs := make([]string, 0)
	for _, r := range rows {
		prev, ok := latest[r.OrderID]
		if !ok {
			orderIDs = append(orderIDs, r.OrderID)
		}
		if !ok || r.Round > prev.Round {
			latest[r.OrderID] = r
		}
	}

	var errs []error
	for _, id := range orderIDs {
		if err := s.settleLocked(ctx, latest[id], domain.RoundTimedOut); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", id, err))
		}
	}
	if err := s.settleStranded(ctx, latest); err != nil {
		errs = append(errs, err)
	}
	return len(rows), errors.Join(errs...)
}

func (s *Service) settleStranded(ctx context.Context, skip map[string]domain.Assignment) error {
	before := s.now().Add(-s.cfg.SettleGrace)

	listCtx, cancel := s.withTimeout(ctx)
	var rows []domain.Assignment
	err := s.store(listCtx, "unsettled rounds", func() error {
		var err error
		rows, err = s.ledger.UnsettledRounds(listCtx, before, s.cfg.SettleBatch)
		return err
	})
	cancel()
	if err != nil {
		return err
	}

	var errs []error
	for _, r := range rows {
		if _, ok := skip[r.OrderID]; ok {
			continue
		}
		ev := domain.RoundAllRejected
		if r.RejectionReason == domain.ReasonExpired {
			ev = domain.RoundTimedOut
		}
		s.logger.Warn("settling stranded round",
			logx.Event("round_resettled"),
			logx.OrderID(r.OrderID),
			logx.Int("round", r.Round),
		)
		if err := s.settleLocked(ctx, r, ev); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", r.OrderID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) settleLocked(ctx context.Context, row domain.Assignment, ev domain.RoundEvent) error {
	unlock := s.locks.lock(row.OrderID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.settleRound(ctx, row, s.now(), ev)
	return err
}

func (s *Service) reportExpired(ctx context.Context, rows []domain.Assignment) {
	if len(rows) == 0 {
		return
	}
	s.metrics.Expired(len(rows))
	for _, r := range rows {
		s.notifier.Notify(ctx, domain.Notification{
			Type:       domain.NotifyOfferExpired,
			OrderID:    r.OrderID,
			CourierID:  r.CourierID,
			Round:      r.Round,
			ExpiresAt:  r.OfferExpiresAt,
			OccurredAt: s.now(),
		})
		s.logger.Info("offer expired",
			logx.Event("offer_expired"),
			logx.OrderID(r.OrderID),
			logx.CourierID(r.CourierID),
			logx.Int("round", r.Round),
		)
	}
}

// CancelRound withdraws every open offer and assignment of a canceled order.
// It returns the number of cancelled assignments.
func (s *Service) CancelRound(ctx context.Context, orderID string) (int, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.lock(orderID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var couriers []int64
	if err := s.store(ctx, "cancel order", func() error {
		var err error
		couriers, err = s.ledger.CancelOrder(ctx, orderID, domain.ReasonOrderCanceled, s.now())
		return err
	}); err != nil {
		return 0, err
	}
	if err := s.offers.CloseAll(ctx, orderID); err != nil {
		s.logger.Warn("close offers failed", logx.OrderID(orderID), logx.Err(err))
	}

	s.logger.Info("dispatch canceled",
		logx.Event("dispatch_canceled"),
		logx.OrderID(orderID),
		logx.Any("couriers", couriers),
	)
	return len(couriers), nil
}
