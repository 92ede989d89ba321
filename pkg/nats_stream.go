package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSStream publishes into a JetStream stream so events survive subscriber
// downtime.
type NATSStream struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NATSStreamConfig configures a NATSStream instance.
type NATSStreamConfig struct {
	URL        string        // NATS server URL
	StreamName string        // JetStream stream name (e.g., "FRONTDESK_EVENTS")
	Subjects   []string      // Subjects captured by the stream
	MaxAge     time.Duration // How long to retain events (e.g., 24 hours)
	MaxMsgs    int64         // Maximum number of messages to retain (0 = unlimited)
}

// NewNATSStream connects and ensures the stream exists.
func NewNATSStream(ctx context.Context, cfg NATSStreamConfig) (*NATSStream, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("frontdesk-stream"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamConfig := jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: cfg.Subjects,
		MaxAge:   cfg.MaxAge,
	}
	if cfg.MaxMsgs > 0 {
		streamConfig.MaxMsgs = cfg.MaxMsgs
	}

	stream, err := js.CreateOrUpdateStream(ctx, streamConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create/update stream %s: %w", cfg.StreamName, err)
	}

	return &NATSStream{
		conn:   conn,
		js:     js,
		stream: stream,
	}, nil
}

// Publish publishes a message to the stream and waits for the ack.
func (s *NATSStream) Publish(ctx context.Context, topic string, msg []byte) error {
	_, err := s.js.Publish(ctx, topic, msg)
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}
	return nil
}

// Ping checks that the stream is still reachable.
func (s *NATSStream) Ping(ctx context.Context) error {
	if _, err := s.stream.Info(ctx); err != nil {
		return fmt.Errorf("cannot reach stream: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (s *NATSStream) Close() error {
	s.conn.Close()
	return nil
}
