package domain

import "time"

// DefaultRating is used for couriers that have no recorded rating yet.
const DefaultRating = 4.5

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid checks that the point lies within latitude/longitude bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// CourierSnapshot is a point-in-time view of a courier used for matching.
// ActiveAssignments is filled from the ledger at ranking time.
type CourierSnapshot struct {
	ID                int64
	Online            bool
	Location          Point
	RecordedAt        time.Time
	Rating            float64
	ActiveAssignments int
}

// LocationPing is a position report sent by a courier device.
type LocationPing struct {
	CourierID  int64
	Location   Point
	Online     bool
	RecordedAt time.Time
}
