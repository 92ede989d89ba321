package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultAMQPExchange is the topic exchange every frontdesk event goes through.
const DefaultAMQPExchange = "frontdesk_topic"

// AMQPBroker publishes and consumes events over a RabbitMQ topic exchange.
// Topics are used as routing keys.
type AMQPBroker struct {
	conn     *amqp.Connection
	exchange string
	logger   apt.Logger

	mu    sync.Mutex
	pubCh *amqp.Channel
	subCh []*amqp.Channel
	wg    sync.WaitGroup
}

func NewAMQPBroker(url, exchange string, logger apt.Logger) (*AMQPBroker, error) {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if exchange == "" {
		exchange = DefaultAMQPExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot open RabbitMQ channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot declare exchange %s: %w", exchange, err)
	}

	return &AMQPBroker{
		conn:     conn,
		exchange: exchange,
		logger:   logger,
		pubCh:    ch,
	}, nil
}

func (b *AMQPBroker) Publish(ctx context.Context, topic string, msg []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pubCh.PublishWithContext(ctx,
		b.exchange, // exchange
		topic,      // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         msg,
		})
}

// Subscribe binds an exclusive, auto-deleted queue to topic and hands every
// delivery to handler until ctx is done or the broker is closed.
func (b *AMQPBroker) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("cannot open channel for %s: %w", topic, err)
	}

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("cannot declare queue for %s: %w", topic, err)
	}

	if err := ch.QueueBind(q.Name, topic, b.exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("cannot bind queue to %s: %w", topic, err)
	}

	deliveries, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		ch.Close()
		return fmt.Errorf("cannot consume %s: %w", topic, err)
	}

	b.mu.Lock()
	b.subCh = append(b.subCh, ch)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := handler(ctx, d.Body); err != nil {
					b.logger.Error("event handler failed", "topic", topic, "error", err)
				}
			}
		}
	}()
	return nil
}

// Ping reports whether the connection is still open.
func (b *AMQPBroker) Ping(ctx context.Context) error {
	if b.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (b *AMQPBroker) Close() error {
	b.mu.Lock()
	channels := append([]*amqp.Channel{b.pubCh}, b.subCh...)
	b.subCh = nil
	b.mu.Unlock()

	for _, ch := range channels {
		if ch != nil && !ch.IsClosed() {
			_ = ch.Close()
		}
	}
	err := b.conn.Close()
	b.wg.Wait()
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("close rabbitmq connection: %w", err)
	}
	return nil
}
