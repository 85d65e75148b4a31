package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/offers"
	"service-dispatch/internal/ranking"
)

// Dispatch opens a new matching round for a ready order. A round that finds nobody is
// reported through RoundResult.NoAgentsAvailable, not as an error.
func (s *Service) Dispatch(ctx context.Context, orderID string) (domain.RoundResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.RoundResult{}, err
	}

	unlock := s.locks.lock(orderID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.dispatchRound(ctx, orderID, -1)
}

// dispatchRound runs one round. escalation < 0 keeps the escalation of the last round.
// The caller holds the order lock.
func (s *Service) dispatchRound(ctx context.Context, orderID string, escalation int) (domain.RoundResult, error) {
	res, err := s.runRound(ctx, orderID, escalation)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrConflict):
		s.metrics.Round(metrics.RoundConflict)
	default:
		s.metrics.Round(metrics.RoundFailed)
		s.logger.Error("dispatch round failed",
			logx.Event("dispatch_failed"),
			logx.OrderID(orderID),
			logx.Err(err),
		)
	}
	return res, err
}

func (s *Service) runRound(ctx context.Context, orderID string, escalation int) (domain.RoundResult, error) {
	state := domain.RoundIdle
	step := func(ev domain.RoundEvent) { state = roundStep(state, ev) }

	pickup, err := s.orders.GetPickupLocation(ctx, orderID)
	if err != nil {
		return domain.RoundResult{}, storeErr("get pickup", err)
	}

	now := s.now()

	var stale []domain.Assignment
	if err := s.store(ctx, "expire order", func() error {
		var err error
		stale, err = s.ledger.ExpireOrder(ctx, orderID, now)
		return err
	}); err != nil {
		return domain.RoundResult{}, err
	}
	s.reportExpired(ctx, stale)

	var st domain.OrderAssignmentState
	if err := s.store(ctx, "order state", func() error {
		var err error
		st, err = s.ledger.OrderState(ctx, orderID, now)
		return err
	}); err != nil {
		return domain.RoundResult{}, err
	}
	if st.Accepted {
		return domain.RoundResult{}, fmt.Errorf("order %s already assigned: %w", orderID, apperr.ErrConflict)
	}
	if st.Pending > 0 {
		return domain.RoundResult{}, fmt.Errorf("order %s has %d live offers: %w", orderID, st.Pending, apperr.ErrConflict)
	}

	if escalation < 0 {
		escalation = 0
		if st.HasRounds {
			escalation = st.LastEscalation
		}
	}
	if escalation > len(s.cfg.RadiiKm)-1 {
		escalation = len(s.cfg.RadiiKm) - 1
	}

	res := domain.RoundResult{
		OrderID:    orderID,
		Round:      st.LastRound + 1,
		Escalation: escalation,
	}
	step(domain.RoundStart)

	candidates, radius, err := s.findCandidates(ctx, orderID, pickup, escalation)
	if err != nil {
		return domain.RoundResult{}, err
	}
	res.RadiusKm = radius

	if len(candidates) == 0 {
		step(domain.RoundNoCandidates)
		res.State = state
		res.NoAgentsAvailable = true

		s.metrics.Round(metrics.RoundNoAgents)
		s.notifier.Notify(ctx, domain.Notification{
			Type:       domain.NotifyRoundNoAgents,
			OrderID:    orderID,
			Round:      res.Round,
			OccurredAt: now,
		})
		s.logger.Info("no couriers available",
			logx.Event("round_no_agents"),
			logx.OrderID(orderID),
			logx.Int("round", res.Round),
			logx.Float64("radius_km", radius),
		)
		return res, nil
	}

	top, err := s.rank(ctx, candidates, now)
	if err != nil {
		return domain.RoundResult{}, err
	}

	ids := make([]int64, 0, len(top))
	for _, c := range top {
		ids = append(ids, c.ID)
	}

	expiresAt := now.Add(s.cfg.OfferTTL)
	if err := s.store(ctx, "open offers", func() error {
		return s.offers.OpenOffers(ctx, orderID, ids, s.cfg.OfferTTL)
	}); err != nil {
		if errors.Is(err, offers.ErrAlreadyOpen) {
			return domain.RoundResult{}, fmt.Errorf("order %s: %w: %w", orderID, apperr.ErrConflict, err)
		}
		return domain.RoundResult{}, err
	}

	offered := make([]int64, 0, len(ids))
	for _, id := range ids {
		a := &domain.Assignment{
			OrderID:        orderID,
			CourierID:      id,
			Round:          res.Round,
			Escalation:     escalation,
			AssignedAt:     now,
			OfferExpiresAt: expiresAt,
		}
		err := s.store(ctx, "create pending", func() error {
			return s.ledger.CreatePending(ctx, a)
		})
		if err != nil {
			// без строки в журнале оффер нельзя принять, курьера выкидываем
			s.logger.Warn("pending assignment not created",
				logx.OrderID(orderID),
				logx.CourierID(id),
				logx.Err(err),
			)
			continue
		}
		offered = append(offered, id)
	}

	if len(offered) == 0 {
		if err := s.offers.CloseAll(ctx, orderID); err != nil {
			s.logger.Warn("close offers failed", logx.OrderID(orderID), logx.Err(err))
		}
		return domain.RoundResult{}, fmt.Errorf("order %s: no assignment recorded: %w", orderID, apperr.ErrStoreFailure)
	}

	step(domain.RoundCandidates)
	res.State = state
	res.Offered = offered
	res.ExpiresAt = expiresAt

	for _, id := range offered {
		s.notifier.Notify(ctx, domain.Notification{
			Type:       domain.NotifyOfferOpened,
			OrderID:    orderID,
			CourierID:  id,
			Round:      res.Round,
			ExpiresAt:  expiresAt,
			OccurredAt: now,
		})
	}
	s.metrics.Round(metrics.RoundOffered)
	s.logger.Info("offers opened",
		logx.Event("offers_opened"),
		logx.OrderID(orderID),
		logx.Int("round", res.Round),
		logx.Int("escalation", escalation),
		logx.Float64("radius_km", radius),
		logx.Any("couriers", offered),
		logx.Time("expires_at", expiresAt),
	)
	return res, nil
}

// findCandidates searches RadiiKm[escalation] and widens to the next step when that
// yields fewer than Fanout couriers. Couriers that already declined the order are skipped.
func (s *Service) findCandidates(ctx context.Context, orderID string, pickup domain.Point, escalation int) ([]domain.CourierSnapshot, float64, error) {
	var declined []int64
	if err := s.store(ctx, "rejected couriers", func() error {
		var err error
		declined, err = s.ledger.RejectedCouriers(ctx, orderID)
		return err
	}); err != nil {
		return nil, 0, err
	}
	skip := make(map[int64]struct{}, len(declined))
	for _, id := range declined {
		skip[id] = struct{}{}
	}

	search := func(radius float64) ([]domain.CourierSnapshot, error) {
		var found []domain.CourierSnapshot
		err := s.store(ctx, "find nearby", func() error {
			var err error
			found, err = s.index.FindNearby(ctx, pickup, radius)
			return err
		})
		if err != nil {
			return nil, err
		}
		out := make([]domain.CourierSnapshot, 0, len(found))
		for _, c := range found {
			if _, ok := skip[c.ID]; !ok {
				out = append(out, c)
			}
		}
		return out, nil
	}

	radius := s.cfg.RadiiKm[escalation]
	found, err := search(radius)
	if err != nil {
		return nil, 0, err
	}
	if len(found) < s.cfg.Fanout && escalation+1 < len(s.cfg.RadiiKm) {
		radius = s.cfg.RadiiKm[escalation+1]
		if found, err = search(radius); err != nil {
			return nil, 0, err
		}
	}
	return found, radius, nil
}

func (s *Service) rank(ctx context.Context, candidates []domain.CourierSnapshot, now time.Time) ([]domain.CourierSnapshot, error) {
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	var counts map[int64]int
	if err := s.store(ctx, "active counts", func() error {
		var err error
		counts, err = s.ledger.ActiveCounts(ctx, ids, now)
		return err
	}); err != nil {
		return nil, err
	}

	withLoad := make([]domain.CourierSnapshot, len(candidates))
	for i, c := range candidates {
		c.ActiveAssignments = counts[c.ID]
		withLoad[i] = c
	}
	return ranking.Top(ranking.Rank(withLoad), s.cfg.Fanout), nil
}
