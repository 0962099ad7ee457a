package events

import "time"

// Envelope is the canonical event shape published on the internal bus.
// Outbox rows persist a marshaled Envelope so the relay can republish
// without consulting the owning context.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        []byte    `json:"payload"`
}
