package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
)

const defaultRejectReason = "declined by courier"

// Accept resolves a courier's acceptance. Exactly one courier per order gets AcceptWon;
// everybody else, including couriers whose offer expired or never existed, gets AcceptTooLate.
// The offer store is only a cache: a miss there still goes to the ledger, which decides.
func (s *Service) Accept(ctx context.Context, orderID string, courierID int64) (domain.AcceptResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.AcceptResult{}, err
	}
	if err := validateCourierID(courierID); err != nil {
		return domain.AcceptResult{}, err
	}

	unlock := s.locks.lock(orderID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := domain.AcceptResult{Outcome: domain.AcceptTooLate, OrderID: orderID, CourierID: courierID}

	live, err := s.offers.IsLive(ctx, orderID, courierID)
	switch {
	case err != nil:
		// кэш офферов может быть недоступен, журнал всё равно решит
		s.logger.Warn("offer store unavailable, checking ledger",
			logx.OrderID(orderID),
			logx.CourierID(courierID),
			logx.Err(err),
		)
	case !live:
		// оффер мог открыть другой процесс со своим кэшем
		s.logger.Debug("offer not cached, checking ledger",
			logx.OrderID(orderID),
			logx.CourierID(courierID),
		)
	}

	now := s.now()
	var (
		won       bool
		cancelled []int64
	)
	if err := s.store(ctx, "accept", func() error {
		var err error
		won, cancelled, err = s.ledger.AcceptIfNoWinner(ctx, orderID, courierID, now)
		return err
	}); err != nil {
		return domain.AcceptResult{}, err
	}
	if !won {
		s.metrics.Accept(string(domain.AcceptTooLate))
		return res, nil
	}

	res.Outcome = domain.AcceptWon
	res.AcceptedAt = now
	res.RoundState = roundStep(domain.RoundOffered, domain.RoundWon)

	if err := s.orders.SetAssignedCourier(ctx, orderID, courierID); err != nil {
		// победитель уже зафиксирован в журнале, статус заказа догонит повторная синхронизация
		s.logger.Error("order status update failed",
			logx.OrderID(orderID),
			logx.CourierID(courierID),
			logx.Err(err),
		)
	}
	if err := s.offers.CloseAll(ctx, orderID); err != nil {
		s.logger.Warn("close offers failed", logx.OrderID(orderID), logx.Err(err))
	}

	s.notifier.Notify(ctx, domain.Notification{
		Type:       domain.NotifyCourierWon,
		OrderID:    orderID,
		CourierID:  courierID,
		OccurredAt: now,
	})
	s.metrics.Accept(string(domain.AcceptWon))
	s.logger.Info("courier assigned",
		logx.Event("courier_assigned"),
		logx.OrderID(orderID),
		logx.CourierID(courierID),
		logx.Int("cancelled_offers", len(cancelled)),
	)
	return res, nil
}

// Reject records a courier's refusal. When it was the last outstanding offer of the round
// the order is re-dispatched once at the next radius; after that the round is exhausted.
func (s *Service) Reject(ctx context.Context, orderID string, courierID int64, reason string) (domain.RejectResult, error) {
	orderID, err := validateOrderID(orderID)
	if err != nil {
		return domain.RejectResult{}, err
	}
	if err := validateCourierID(courierID); err != nil {
		return domain.RejectResult{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRejectReason
	}

	unlock := s.locks.lock(orderID)
	defer unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	var row domain.Assignment
	if err := s.store(ctx, "reject", func() error {
		var err error
		row, err = s.ledger.Reject(ctx, orderID, courierID, reason, now)
		return err
	}); err != nil {
		return domain.RejectResult{}, err
	}

	s.logger.Info("offer rejected",
		logx.Event("offer_rejected"),
		logx.OrderID(orderID),
		logx.CourierID(courierID),
		logx.Int("round", row.Round),
		logx.String("reason", reason),
	)

	res := domain.RejectResult{OrderID: orderID, CourierID: courierID}
	out, err := s.settleRound(ctx, row, now, domain.RoundAllRejected)
	res.RoundState = out.state
	if err != nil {
		return res, err
	}
	res.Round = out.next
	res.Redispatched = out.next != nil
	res.Exhausted = out.exhausted
	return res, nil
}

type settlement struct {
	state     domain.RoundState
	next      *domain.RoundResult
	exhausted bool
}

// settleRound decides what happens once row left PENDING through ev. If its round has no
// outstanding offers and no winner, the order goes to the next escalation or, past the cap,
// is reported exhausted; either way the round is then marked settled in the ledger.
// The caller holds the order lock.
func (s *Service) settleRound(ctx context.Context, row domain.Assignment, now time.Time, ev domain.RoundEvent) (settlement, error) {
	var st domain.OrderAssignmentState
	if err := s.store(ctx, "order state", func() error {
		var err error
		st, err = s.ledger.OrderState(ctx, row.OrderID, now)
		return err
	}); err != nil {
		return settlement{state: domain.RoundOffered}, err
	}

	superseded := row.Round < st.LastRound
	out := settlement{state: domain.RoundOffered}
	switch {
	case superseded:
		out.state = roundStep(domain.RoundOffered, ev)
	case st.Accepted:
		out.state = roundStep(domain.RoundOffered, domain.RoundWon)
	case st.Pending == 0:
		out.state = roundStep(domain.RoundOffered, ev)
	}
	// раунд ещё жив, уже выигран или его сменил более новый
	if !out.state.Terminal() || superseded || st.Accepted {
		return out, nil
	}

	if err := s.offers.CloseAll(ctx, row.OrderID); err != nil {
		s.logger.Warn("close offers failed", logx.OrderID(row.OrderID), logx.Err(err))
	}

	if st.LastEscalation < s.cfg.MaxEscalations {
		res, err := s.dispatchRound(ctx, row.OrderID, st.LastEscalation+1)
		if errors.Is(err, apperr.ErrConflict) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		s.markSettled(ctx, row, now)
		out.next = &res
		return out, nil
	}

	s.metrics.Round(metrics.RoundExhausted)
	s.notifier.Notify(ctx, domain.Notification{
		Type:       domain.NotifyRoundExhausted,
		OrderID:    row.OrderID,
		Round:      st.LastRound,
		OccurredAt: now,
	})
	s.logger.Warn("order left unassigned",
		logx.Event("round_exhausted"),
		logx.OrderID(row.OrderID),
		logx.Int("round", st.LastRound),
		logx.Int("escalation", st.LastEscalation),
		logx.String("round_state", string(out.state)),
	)
	s.markSettled(ctx, row, now)
	out.exhausted = true
	return out, nil
}

func (s *Service) markSettled(ctx context.Context, row domain.Assignment, now time.Time) {
	err := s.store(ctx, "settle round", func() error {
		return s.ledger.SettleRound(ctx, row.OrderID, row.Round, now)
	})
	if err != nil {
		// следующий прогон sweeper'а повторит решение по раунду
		s.logger.Warn("round not marked settled",
			logx.OrderID(row.OrderID),
			logx.Int("round", row.Round),
			logx.Err(err),
		)
	}
}
