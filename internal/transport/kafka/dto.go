package kafka

import (
	"strings"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/orders"
)

// EventDTO is the wire form of an order event on the orders topic.
type EventDTO struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	return orders.Event{
		OrderID:   strings.TrimSpace(dto.OrderID),
		Status:    strings.TrimSpace(dto.Status),
		CreatedAt: dto.CreatedAt,
	}
}

// NotificationDTO is the wire form of an engine notification.
type NotificationDTO struct {
	EventID    string     `json:"event_id"`
	Type       string     `json:"type"`
	OrderID    string     `json:"order_id"`
	CourierID  int64      `json:"courier_id,omitempty"`
	Round      int        `json:"round"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// FromNotification converts a domain notification to its wire form.
func FromNotification(eventID string, n domain.Notification) NotificationDTO {
	dto := NotificationDTO{
		EventID:    eventID,
		Type:       string(n.Type),
		OrderID:    n.OrderID,
		CourierID:  n.CourierID,
		Round:      n.Round,
		OccurredAt: n.OccurredAt,
	}
	if !n.ExpiresAt.IsZero() {
		at := n.ExpiresAt
		dto.ExpiresAt = &at
	}
	return dto
}
