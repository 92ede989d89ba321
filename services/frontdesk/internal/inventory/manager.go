package inventory

import (
	"context"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/appetiteclub/frontdesk/pkg/event"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/calendar"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

type ManagerDeps struct {
	Store     record.Store
	Publisher events.Publisher
	Clock     calendar.Clock
}

// Manager tracks stock levels on top of the record store.
type Manager struct {
	items     *record.Collection[*Item]
	publisher events.Publisher
	now       calendar.Clock
	logger    apt.Logger
}

func NewManager(deps ManagerDeps, logger apt.Logger) *Manager {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = pkg.NoopPublisher{}
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &Manager{
		items:     record.NewCollection(deps.Store, record.Inventory, fromRecord),
		publisher: publisher,
		now:       now,
		logger:    logger,
	}
}

// List returns every item in storage order. On failure the slice is empty
// and the error is returned for callers that must not degrade.
func (m *Manager) List(ctx context.Context) ([]*Item, error) {
	items, err := m.items.All(ctx)
	if err != nil {
		m.logger.Error("cannot list inventory", "error", err)
		return []*Item{}, err
	}
	return items, nil
}

// Get returns the item or nil when it does not exist.
func (m *Manager) Get(ctx context.Context, id int64) (*Item, error) {
	item, _, err := m.items.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (m *Manager) Create(ctx context.Context, in CreateInput) (*Item, error) {
	if err := record.Invalid(record.CollectionInventory, validateCreate(in)); err != nil {
		return nil, err
	}

	item, err := m.items.Create(ctx, in.toRecord(m.now()))
	if err != nil {
		m.logger.Error("cannot create inventory item", "name", in.Name, "error", err)
		return nil, err
	}

	m.notify(ctx, item)
	return item, nil
}

func (m *Manager) Update(ctx context.Context, id int64, p Patch) (*Item, error) {
	if err := record.Invalid(record.CollectionInventory, validatePatch(p)); err != nil {
		return nil, err
	}

	item, err := m.items.Update(ctx, id, p.toRecord(m.now()))
	if err != nil {
		m.logger.Error("cannot update inventory item", "id", id, "error", err)
		return nil, err
	}

	m.notify(ctx, item)
	return item, nil
}

// AdjustQuantity adds delta to the stored quantity. A change that would
// drive the quantity negative is ignored and the current item is returned.
func (m *Manager) AdjustQuantity(ctx context.Context, id int64, delta int) (*Item, error) {
	current, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, record.NotFound(record.CollectionInventory, id)
	}

	next := current.Quantity + delta
	if next < 0 {
		m.logger.Debug("ignoring adjustment below zero", "id", id, "quantity", current.Quantity, "delta", delta)
		return current, nil
	}
	return m.Update(ctx, id, Patch{Quantity: &next})
}

// LowStock returns items at or below their threshold.
func (m *Manager) LowStock(ctx context.Context) ([]*Item, error) {
	items, err := m.List(ctx)
	if err != nil {
		return []*Item{}, err
	}
	return FilterItems(items, FilterLow), nil
}

func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.items.Delete(ctx, id); err != nil {
		m.logger.Error("cannot delete inventory item", "id", id, "error", err)
		return err
	}

	evt := event.NewInventoryEvent(event.EventInventoryDeleted, id, m.now())
	m.publish(ctx, evt)
	return nil
}

func (m *Manager) notify(ctx context.Context, item *Item) {
	if item == nil {
		return
	}
	eventType := event.EventInventoryUpdated
	if item.IsLowStock() {
		eventType = event.EventInventoryLowStock
	}
	evt := event.NewInventoryEvent(eventType, item.ID, m.now())
	evt.Name = item.Name
	evt.Quantity = item.Quantity
	evt.Unit = item.Unit
	evt.LowStockThreshold = item.LowStockThreshold
	m.publish(ctx, evt)
}

func (m *Manager) publish(ctx context.Context, evt event.InventoryEvent) {
	if err := pkg.PublishJSON(ctx, m.publisher, event.InventoryTopic, evt); err != nil {
		m.logger.Error("cannot publish inventory event", "id", evt.ItemID, "event_type", evt.EventType, "error", err)
	}
}
