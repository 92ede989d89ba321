package dashboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/appetiteclub/frontdesk/pkg/event"
)

// Topics whose events make the dashboard snapshot stale.
var Topics = []string{event.OrdersTopic, event.ReservationsTopic, event.InventoryTopic}

// EventSubscriber drops the dashboard snapshot whenever orders, reservations
// or inventory change.
type EventSubscriber struct {
	subscriber events.Subscriber
	aggregator *Aggregator
	logger     apt.Logger
}

func NewEventSubscriber(sub events.Subscriber, aggregator *Aggregator, logger apt.Logger) *EventSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &EventSubscriber{
		subscriber: sub,
		aggregator: aggregator,
		logger:     logger,
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	if s.subscriber == nil {
		return fmt.Errorf("dashboard subscriber not configured")
	}
	for _, topic := range Topics {
		s.logger.Info("starting dashboard subscriber", "topic", topic)
		if err := s.subscriber.Subscribe(ctx, topic, s.handleEvent); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var base struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(msg, &base); err != nil {
		s.logger.Info("invalid dashboard event", "error", err)
		return nil
	}

	s.aggregator.Invalidate()
	s.logger.Debug("dashboard snapshot invalidated", "event_type", base.EventType)
	return nil
}
