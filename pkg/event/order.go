package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrdersTopic             = "frontdesk.orders"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is published to NATS whenever an order is created, changes
// status or is removed.
type OrderEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	OrderID        int64     `json:"order_id"`
	OrderNumber    string    `json:"order_number,omitempty"`
	TableNumber    int       `json:"table_number,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalAmount    float64   `json:"total_amount,omitempty"`
}

// NewOrderEvent stamps a fresh event id and occurrence time.
func NewOrderEvent(eventType string, orderID int64, at time.Time) OrderEvent {
	return OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: at,
		OrderID:    orderID,
	}
}
