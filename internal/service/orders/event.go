package orders

import "time"

// Event is an order lifecycle change published by the orders service.
// Only "ready" and "canceled"/"deleted" matter to dispatch.
type Event struct {
	OrderID   string
	Status    string
	CreatedAt time.Time
}
