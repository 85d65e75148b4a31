package domain

import "time"

// NotificationType names an event emitted by the engine.
type NotificationType string

// List of notification types
const (
	NotifyOfferOpened    NotificationType = "offer.opened"
	NotifyCourierWon     NotificationType = "courier.won"
	NotifyOfferExpired   NotificationType = "offer.expired"
	NotifyRoundNoAgents  NotificationType = "round.no_agents"
	NotifyRoundExhausted NotificationType = "round.exhausted"
)

// Notification is a best-effort message for couriers and the order service.
// CourierID is zero for order-level events.
type Notification struct {
	Type       NotificationType
	OrderID    string
	CourierID  int64
	Round      int
	ExpiresAt  time.Time
	OccurredAt time.Time
}
