package order

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/appetiteclub/frontdesk/pkg/event"
)

// MockPublisher keeps every published order event.
type MockPublisher struct {
	mu          sync.Mutex
	Events      []event.OrderEvent
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, evt)
	return nil
}

func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.EventType)
	}
	return out
}
