package messaging

import (
	"context"
	"log/slog"
	"sync"

	"agora/internal/shared/events"
)

// Bus is the in-process publish/subscribe adapter used by the worker relay.
// Consumers that cannot keep up drop events rather than block the relay.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan events.Envelope
	logger      *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan events.Envelope),
		logger:      logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, envelope events.Envelope) error {
	b.mu.RLock()
	subs := append([]chan events.Envelope(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- envelope:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", envelope.EventID,
			)
		}
	}

	b.logger.Info("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
	)
	return nil
}

func (b *Bus) Subscribe(topic string, buffer int) <-chan events.Envelope {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan events.Envelope, buffer)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}
