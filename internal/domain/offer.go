package domain

import "time"

// Offer is a time-boxed invitation for one courier to accept one order.
type Offer struct {
	OrderID   string
	CourierID int64
	OpenedAt  time.Time
	ExpiresAt time.Time
}

// LiveAt reports whether the offer can still be honored at now.
func (o Offer) LiveAt(now time.Time) bool {
	return now.Before(o.ExpiresAt)
}
