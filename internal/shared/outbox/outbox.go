package outbox

import "time"

// Message is an outbox row persisted inside the same DB transaction as the
// state change it describes. The worker relay reads pending rows in insert
// order and publishes them to the message bus.
type Message struct {
	OutboxID  string
	EventType string
	Payload   []byte
	Status    string // pending, sent
	CreatedAt time.Time
}

const (
	StatusPending = "pending"
	StatusSent    = "sent"
)
