package dashboard

import (
	"context"
	"sync"

	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/inventory"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/order"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservation"
)

type MockOrders struct {
	Orders   []*order.Order
	ListFunc func(ctx context.Context) ([]*order.Order, error)
}

func (m *MockOrders) List(ctx context.Context) ([]*order.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.Orders, nil
}

type MockReservations struct {
	Reservations []*reservation.Reservation
	TodaysFunc   func(ctx context.Context) ([]*reservation.Reservation, error)
}

func (m *MockReservations) Todays(ctx context.Context) ([]*reservation.Reservation, error) {
	if m.TodaysFunc != nil {
		return m.TodaysFunc(ctx)
	}
	return m.Reservations, nil
}

type MockInventory struct {
	Items        []*inventory.Item
	LowStockFunc func(ctx context.Context) ([]*inventory.Item, error)
}

func (m *MockInventory) LowStock(ctx context.Context) ([]*inventory.Item, error) {
	if m.LowStockFunc != nil {
		return m.LowStockFunc(ctx)
	}
	return m.Items, nil
}

// MockSubscriber keeps handlers so tests can deliver messages by topic.
type MockSubscriber struct {
	mu       sync.Mutex
	handlers map[string]events.HandlerFunc
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = make(map[string]events.HandlerFunc)
	}
	m.handlers[topic] = handler
	return nil
}

func (m *MockSubscriber) Deliver(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	h := m.handlers[topic]
	m.mu.Unlock()
	if h == nil {
		return nil
	}
	return h(ctx, msg)
}
