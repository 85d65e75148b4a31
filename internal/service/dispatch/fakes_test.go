package dispatch_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	order "service-dispatch/internal/gateway/orders"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func mustTo(from domain.AssignmentStatus, ev domain.AssignmentEvent) domain.AssignmentStatus {
	to, err := domain.Transition(from, ev)
	if err != nil {
		panic(err)
	}
	return to
}

// memLedger mirrors the conditional updates of the Postgres ledger under one mutex.
type memLedger struct {
	mu     sync.Mutex
	rows   []*domain.Assignment
	nextID int64

	createErr map[int64]error
	settled   map[roundRef]time.Time
}

type roundRef struct {
	orderID string
	round   int
}

func newLedger() *memLedger {
	return &memLedger{createErr: map[int64]error{}, settled: map[roundRef]time.Time{}}
}

func (l *memLedger) CreatePending(_ context.Context, a *domain.Assignment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.createErr[a.CourierID]; err != nil {
		return err
	}
	for _, r := range l.rows {
		if r.OrderID == a.OrderID && r.CourierID == a.CourierID && r.Round == a.Round {
			return apperr.ErrConflict
		}
	}
	l.nextID++
	a.ID = l.nextID
	a.Status = domain.AssignmentPending
	cp := *a
	l.rows = append(l.rows, &cp)
	return nil
}

func (l *memLedger) OrderState(_ context.Context, orderID string, now time.Time) (domain.OrderAssignmentState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := domain.OrderAssignmentState{LastRound: -1}
	var lastID int64
	for _, r := range l.rows {
		if r.OrderID != orderID {
			continue
		}
		st.HasRounds = true
		if r.Round > st.LastRound || (r.Round == st.LastRound && r.ID > lastID) {
			st.LastRound = r.Round
			st.LastEscalation = r.Escalation
			lastID = r.ID
		}
		switch r.Status {
		case domain.AssignmentPending:
			if r.OfferExpiresAt.After(now) {
				st.Pending++
			}
		case domain.AssignmentAccepted, domain.AssignmentCompleted:
			st.Accepted = true
		}
	}
	return st, nil
}

func (l *memLedger) RejectedCouriers(_ context.Context, orderID string) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []int64
	for _, r := range l.rows {
		if r.OrderID == orderID && r.Status == domain.AssignmentRejected {
			out = append(out, r.CourierID)
		}
	}
	return out, nil
}

func (l *memLedger) ActiveCounts(_ context.Context, ids []int64, now time.Time) (map[int64]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[int64]int{}
	for _, r := range l.rows {
		if !want[r.CourierID] {
			continue
		}
		if r.Status == domain.AssignmentAccepted || (r.Status == domain.AssignmentPending && r.OfferExpiresAt.After(now)) {
			out[r.CourierID]++
		}
	}
	return out, nil
}

func (l *memLedger) AcceptIfNoWinner(_ context.Context, orderID string, courierID int64, now time.Time) (bool, []int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var mine *domain.Assignment
	for _, r := range l.rows {
		if r.OrderID != orderID {
			continue
		}
		if r.Status == domain.AssignmentAccepted {
			return false, nil, nil
		}
		if r.CourierID == courierID && r.Status == domain.AssignmentPending && r.OfferExpiresAt.After(now) {
			mine = r
		}
	}
	if mine == nil {
		return false, nil, nil
	}

	mine.Status = mustTo(mine.Status, domain.EventAccept)
	at := now
	mine.AcceptedAt = &at

	var cancelled []int64
	for _, r := range l.rows {
		if r.OrderID == orderID && r != mine && r.Status == domain.AssignmentPending {
			r.Status = mustTo(r.Status, domain.EventCancel)
			r.RejectionReason = domain.ReasonSiblingWon
			cancelled = append(cancelled, r.CourierID)
		}
	}
	return true, cancelled, nil
}

func (l *memLedger) Reject(_ context.Context, orderID string, courierID int64, reason string, now time.Time) (domain.Assignment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		mine   *domain.Assignment
		exists bool
	)
	for _, r := range l.rows {
		if r.OrderID != orderID || r.CourierID != courierID {
			continue
		}
		exists = true
		if r.Status == domain.AssignmentPending && (mine == nil || r.Round > mine.Round) {
			mine = r
		}
	}
	if mine == nil {
		if exists {
			return domain.Assignment{}, fmt.Errorf("not pending: %w", apperr.ErrConflict)
		}
		return domain.Assignment{}, fmt.Errorf("no assignment: %w", apperr.ErrNotFound)
	}
	mine.Status = mustTo(mine.Status, domain.EventReject)
	at := now
	mine.RejectedAt = &at
	mine.RejectionReason = reason
	return *mine, nil
}

func (l *memLedger) expire(orderID string, now time.Time) []domain.Assignment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.Assignment
	for _, r := range l.rows {
		if orderID != "" && r.OrderID != orderID {
			continue
		}
		if r.Status == domain.AssignmentPending && !r.OfferExpiresAt.After(now) {
			r.Status = mustTo(r.Status, domain.EventExpire)
			at := now
			r.RejectedAt = &at
			r.RejectionReason = domain.ReasonExpired
			out = append(out, *r)
		}
	}
	return out
}

func (l *memLedger) ExpirePending(_ context.Context, now time.Time) ([]domain.Assignment, error) {
	return l.expire("", now), nil
}

func (l *memLedger) ExpireOrder(_ context.Context, orderID string, now time.Time) ([]domain.Assignment, error) {
	return l.expire(orderID, now), nil
}

func (l *memLedger) CancelOrder(_ context.Context, orderID, reason string, _ time.Time) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []int64
	for _, r := range l.rows {
		if r.OrderID != orderID {
			continue
		}
		if to, err := domain.Transition(r.Status, domain.EventCancel); err == nil {
			r.Status = to
			r.RejectionReason = reason
			out = append(out, r.CourierID)
		}
	}
	return out, nil
}

func (l *memLedger) find(orderID string, courierID int64, st domain.AssignmentStatus) *domain.Assignment {
	for _, r := range l.rows {
		if r.OrderID == orderID && r.CourierID == courierID && r.Status == st {
			return r
		}
	}
	return nil
}

func (l *memLedger) MarkPickedUp(_ context.Context, orderID string, courierID int64, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	r := l.find(orderID, courierID, domain.AssignmentAccepted)
	if r == nil {
		return apperr.ErrNotFound
	}
	if r.PickedUpAt == nil {
		at := now
		r.PickedUpAt = &at
	}
	return nil
}

func (l *memLedger) Complete(_ context.Context, orderID string, courierID int64, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.find(orderID, courierID, domain.AssignmentCompleted) != nil {
		return nil
	}
	r := l.find(orderID, courierID, domain.AssignmentAccepted)
	if r == nil {
		return apperr.ErrNotFound
	}
	r.Status = mustTo(r.Status, domain.EventComplete)
	at := now
	r.DeliveredAt = &at
	return nil
}

func (l *memLedger) ListByCourier(_ context.Context, courierID int64, statuses []domain.AssignmentStatus, limit, offset int) ([]domain.Assignment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	want := map[domain.AssignmentStatus]bool{}
	for _, s := range statuses {
		want[s] = true
	}
	var out []domain.Assignment
	for _, r := range l.rows {
		if r.CourierID == courierID && want[r.Status] {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *memLedger) Get(_ context.Context, id int64) (domain.Assignment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.rows {
		if r.ID == id {
			return *r, nil
		}
	}
	return domain.Assignment{}, fmt.Errorf("assignment %d: %w", id, apperr.ErrNotFound)
}

func (l *memLedger) SettleRound(_ context.Context, orderID string, round int, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ref := roundRef{orderID: orderID, round: round}
	if _, ok := l.settled[ref]; !ok {
		l.settled[ref] = now
	}
	return nil
}

func (l *memLedger) UnsettledRounds(_ context.Context, before time.Time, limit int) ([]domain.Assignment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	latest := map[string]int{}
	won := map[string]bool{}
	var orders []string
	for _, r := range l.rows {
		if cur, ok := latest[r.OrderID]; !ok || r.Round > cur {
			if !ok {
				orders = append(orders, r.OrderID)
			}
			latest[r.OrderID] = r.Round
		}
		if r.Status == domain.AssignmentAccepted || r.Status == domain.AssignmentCompleted {
			won[r.OrderID] = true
		}
	}

	var out []domain.Assignment
	for _, id := range orders {
		ref := roundRef{orderID: id, round: latest[id]}
		if _, ok := l.settled[ref]; ok || won[id] {
			continue
		}
		var pick *domain.Assignment
		ok := true
		for _, r := range l.rows {
			if r.OrderID != id || r.Round != ref.round {
				continue
			}
			if r.Status != domain.AssignmentRejected || r.RejectedAt == nil || r.RejectedAt.After(before) {
				ok = false
				break
			}
			if pick == nil || r.RejectedAt.After(*pick.RejectedAt) {
				pick = r
			}
		}
		if ok && pick != nil {
			out = append(out, *pick)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (l *memLedger) isSettled(orderID string, round int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.settled[roundRef{orderID: orderID, round: round}]
	return ok
}

func (l *memLedger) byOrder(orderID string) []domain.Assignment {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.Assignment
	for _, r := range l.rows {
		if r.OrderID == orderID {
			out = append(out, *r)
		}
	}
	return out
}

func (l *memLedger) countStatus(orderID string, st domain.AssignmentStatus) int {
	n := 0
	for _, r := range l.byOrder(orderID) {
		if r.Status == st {
			n++
		}
	}
	return n
}

// memSource is the courier location table.
type memSource struct {
	mu       sync.Mutex
	couriers []domain.CourierSnapshot
	err      error
}

func (s *memSource) ListOnline(_ context.Context, since time.Time) ([]domain.CourierSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	var out []domain.CourierSnapshot
	for _, c := range s.couriers {
		if c.Online && !c.RecordedAt.Before(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

// memOrders is the orders table.
type memOrders struct {
	mu       sync.Mutex
	pickup   map[string]domain.Point
	status   map[string]order.Status
	assigned map[string]int64

	statusErr error
}

func newOrders() *memOrders {
	return &memOrders{
		pickup:   map[string]domain.Point{},
		status:   map[string]order.Status{},
		assigned: map[string]int64{},
	}
}

func (o *memOrders) failStatus(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statusErr = err
}

func (o *memOrders) currentStatus(orderID string) order.Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status[orderID]
}

func (o *memOrders) GetPickupLocation(_ context.Context, orderID string) (domain.Point, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.pickup[orderID]
	if !ok {
		return domain.Point{}, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	return p, nil
}

func (o *memOrders) SetAssignedCourier(_ context.Context, orderID string, courierID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.status[orderID] = order.StatusAssigned
	o.assigned[orderID] = courierID
	return nil
}

func (o *memOrders) SetStatus(_ context.Context, orderID string, st order.Status) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.statusErr != nil {
		return o.statusErr
	}
	o.status[orderID] = st
	return nil
}

// recNotifier records notifications.
type recNotifier struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (n *recNotifier) Notify(_ context.Context, x domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func (n *recNotifier) ofType(t domain.NotificationType) []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []domain.Notification
	for _, x := range n.got {
		if x.Type == t {
			out = append(out, x)
		}
	}
	return out
}
