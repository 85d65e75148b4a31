// Package offers keeps the ephemeral record of outstanding offers per order.
//
// The store is a cache derived from the assignment ledger: losing it never
// produces a wrong assignment, only an extra round-trip to the ledger.
package offers

import (
	"errors"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
)

// DefaultTTL is the marketplace SLA for answering an offer.
const DefaultTTL = 2 * time.Minute

// ErrAlreadyOpen is returned when an order already has live offers.
var ErrAlreadyOpen = errors.New("offers already open")

func validateOpen(orderID string, courierIDs []int64, ttl time.Duration) error {
	if strings.TrimSpace(orderID) == "" || len(courierIDs) == 0 || ttl <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}
