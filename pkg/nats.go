package pkg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/nats-io/nats.go"
)

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("frontdesk-publisher"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(topic, msg)
}

// Ping reports whether the connection is usable.
func (p *NATSPublisher) Ping(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats connection is %s", p.conn.Status())
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
	return nil
}

type NATSSubscriber struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger apt.Logger
}

func NewNATSSubscriber(url string, logger apt.Logger) (*NATSSubscriber, error) {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	conn, err := nats.Connect(url, nats.Name("frontdesk-subscriber"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSubscriber{conn: conn, logger: logger}, nil
}

func (s *NATSSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	sub, err := s.conn.Subscribe(topic, func(msg *nats.Msg) {
		if err := handler(ctx, msg.Data); err != nil {
			s.logger.Error("event handler failed", "topic", topic, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cannot subscribe to %s: %w", topic, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *NATSSubscriber) Close() error {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.conn.Close()
	return nil
}

// NoopPublisher discards every event. Used when NATS is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}

// PublishJSON marshals payload and publishes it on topic.
func PublishJSON(ctx context.Context, pub events.Publisher, topic string, payload any) error {
	if pub == nil {
		return nil
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot encode event for %s: %w", topic, err)
	}
	if err := pub.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("cannot publish event to %s: %w", topic, err)
	}
	return nil
}
