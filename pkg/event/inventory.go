package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	InventoryTopic         = "frontdesk.inventory"
	EventInventoryUpdated  = "inventory.updated"
	EventInventoryLowStock = "inventory.low_stock"
	EventInventoryDeleted  = "inventory.deleted"
)

// InventoryEvent is published after every inventory mutation. A mutation
// that leaves the item at or below its threshold is reported as low_stock
// instead of updated.
type InventoryEvent struct {
	EventID           string    `json:"event_id"`
	EventType         string    `json:"event_type"`
	OccurredAt        time.Time `json:"occurred_at"`
	ItemID            int64     `json:"item_id"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	Unit              string    `json:"unit,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

func NewInventoryEvent(eventType string, itemID int64, at time.Time) InventoryEvent {
	return InventoryEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: at,
		ItemID:     itemID,
	}
}
