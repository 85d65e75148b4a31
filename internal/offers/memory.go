package offers

import (
	"context"
	"sync"
	"time"

	"service-dispatch/internal/domain"
)

// MemoryStore is an in-process OfferStore used when Redis is not configured.
type MemoryStore struct {
	mu     sync.Mutex
	now    func() time.Time
	rounds map[string]map[int64]domain.Offer
}

// NewMemoryStore creates an empty MemoryStore driven by the given clock (nil means time.Now).
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &MemoryStore{now: now, rounds: make(map[string]map[int64]domain.Offer)}
}

// OpenOffers creates one offer per courier, all expiring after ttl.
func (s *MemoryStore) OpenOffers(_ context.Context, orderID string, courierIDs []int64, ttl time.Duration) error {
	if err := validateOpen(orderID, courierIDs, ttl); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, o := range s.rounds[orderID] {
		if o.LiveAt(now) {
			return ErrAlreadyOpen
		}
	}

	round := make(map[int64]domain.Offer, len(courierIDs))
	expires := now.Add(ttl)
	for _, id := range courierIDs {
		round[id] = domain.Offer{OrderID: orderID, CourierID: id, OpenedAt: now, ExpiresAt: expires}
	}
	s.rounds[orderID] = round
	return nil
}

// IsLive reports whether the courier holds an unexpired offer for the order.
func (s *MemoryStore) IsLive(_ context.Context, orderID string, courierID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.rounds[orderID][courierID]
	if !ok {
		return false, nil
	}
	now := s.now()
	if !o.LiveAt(now) {
		delete(s.rounds[orderID], courierID)
		return false, nil
	}
	return true, nil
}

// CloseAll drops every offer of the order. Closing twice is a no-op.
func (s *MemoryStore) CloseAll(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, orderID)
	return nil
}
