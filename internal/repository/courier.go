package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// CourierRepo reads courier positions and ratings and stores location pings.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// ListOnline returns online couriers whose last position was recorded at or after since.
// ActiveAssignments is left zero, the engine fills it from the ledger.
func (r *CourierRepo) ListOnline(ctx context.Context, since time.Time) ([]domain.CourierSnapshot, error) {
	rows, err := r.db.Query(ctx, `
        SELECT l.courier_id, l.online, l.lat, l.lon, l.recorded_at, COALESCE(c.rating, $2)
        FROM courier_locations l
        JOIN couriers c ON c.id = l.courier_id
        WHERE l.online AND l.recorded_at >= $1
    `, since, domain.DefaultRating)
	if err != nil {
		return nil, fmt.Errorf("list online couriers: %w", err)
	}
	defer rows.Close()

	var out []domain.CourierSnapshot
	for rows.Next() {
		var s domain.CourierSnapshot
		if err := rows.Scan(&s.ID, &s.Online, &s.Location.Lat, &s.Location.Lon, &s.RecordedAt, &s.Rating); err != nil {
			return nil, fmt.Errorf("scan courier snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Snapshot returns the last known state of a courier. A courier that never sent a
// location is reported offline at (0, 0) with a zero RecordedAt.
func (r *CourierRepo) Snapshot(ctx context.Context, courierID int64) (domain.CourierSnapshot, error) {
	s := domain.CourierSnapshot{ID: courierID}
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(l.online, false), COALESCE(l.lat, 0), COALESCE(l.lon, 0),
               COALESCE(l.recorded_at, 'epoch'::timestamptz), COALESCE(c.rating, $2)
        FROM couriers c
        LEFT JOIN courier_locations l ON l.courier_id = c.id
        WHERE c.id = $1
    `, courierID, domain.DefaultRating).Scan(&s.Online, &s.Location.Lat, &s.Location.Lon, &s.RecordedAt, &s.Rating)
	if err != nil {
		if IsNotFound(err) {
			return s, fmt.Errorf("courier %d: %w", courierID, apperr.ErrNotFound)
		}
		return s, fmt.Errorf("courier snapshot %d: %w", courierID, err)
	}
	if s.RecordedAt.Unix() == 0 {
		s.RecordedAt = time.Time{}
	}
	return s, nil
}

// UpsertLocation stores the latest position of a courier. Older pings never overwrite newer ones.
func (r *CourierRepo) UpsertLocation(ctx context.Context, p domain.LocationPing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO courier_locations (courier_id, lat, lon, online, recorded_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (courier_id) DO UPDATE
        SET lat = EXCLUDED.lat,
            lon = EXCLUDED.lon,
            online = EXCLUDED.online,
            recorded_at = EXCLUDED.recorded_at
        WHERE courier_locations.recorded_at <= EXCLUDED.recorded_at
    `, p.CourierID, p.Location.Lat, p.Location.Lon, p.Online, p.RecordedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("courier %d: %w", p.CourierID, apperr.ErrNotFound)
		}
		return fmt.Errorf("upsert location of courier %d: %w", p.CourierID, err)
	}
	return nil
}
