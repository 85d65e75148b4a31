package geo

import (
	"context"
	"fmt"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// SnapshotSource lists couriers that reported a position at or after since.
type SnapshotSource interface {
	ListOnline(ctx context.Context, since time.Time) ([]domain.CourierSnapshot, error)
}

// Index answers radius queries over last-known courier positions.
type Index struct {
	src       SnapshotSource
	freshness time.Duration
	now       func() time.Time
}

// NewIndex creates an Index; positions older than freshness are treated as unavailable.
func NewIndex(src SnapshotSource, freshness time.Duration) *Index {
	if freshness <= 0 {
		freshness = 5 * time.Minute
	}
	return &Index{
		src:       src,
		freshness: freshness,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source; intended for tests.
func (i *Index) WithClock(now func() time.Time) *Index {
	if now != nil {
		i.now = now
	}
	return i
}

// FindNearby returns online couriers with a fresh position within radiusKm of origin.
// The result has no particular order. A source failure is returned as an error, never
// as an empty result.
func (i *Index) FindNearby(ctx context.Context, origin domain.Point, radiusKm float64) ([]domain.CourierSnapshot, error) {
	if !origin.Valid() || radiusKm <= 0 {
		return nil, apperr.ErrInvalid
	}

	since := i.now().Add(-i.freshness)
	all, err := i.src.ListOnline(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("geo index: list online couriers: %w", err)
	}

	out := make([]domain.CourierSnapshot, 0, len(all))
	for _, c := range all {
		// источник может отдать лишнее, фильтруем сами
		if !c.Online || c.RecordedAt.Before(since) {
			continue
		}
		if Distance(origin, c.Location) <= radiusKm {
			out = append(out, c)
		}
	}
	return out, nil
}
