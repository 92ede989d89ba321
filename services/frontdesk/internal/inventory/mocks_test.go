package inventory

import (
	"context"
	"sync"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

// MockPublisher records every published message.
type MockPublisher struct {
	mu          sync.Mutex
	Topics      []string
	Messages    [][]byte
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Messages = append(m.Messages, msg)
	return nil
}

func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Topics)
}

// MockStore delegates to an in-memory store unless a Func override is set.
type MockStore struct {
	*record.MemoryStore
	FetchAllFunc func(ctx context.Context, collection string, fields []string) ([]record.Record, error)
}

func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: record.NewMemoryStore()}
}

func (m *MockStore) FetchAll(ctx context.Context, collection string, fields []string) ([]record.Record, error) {
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx, collection, fields)
	}
	return m.MemoryStore.FetchAll(ctx, collection, fields)
}
