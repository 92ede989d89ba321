package reservation

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/appetiteclub/frontdesk/pkg/event"
)

type MockPublisher struct {
	mu          sync.Mutex
	Topics      []string
	Events      []event.ReservationEvent
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	var evt event.ReservationEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Events = append(m.Events, evt)
	return nil
}
