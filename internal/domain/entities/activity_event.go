package entities

import "time"

// EventAction is the kind of mutation an event describes.
type EventAction string

const (
	EventActionCreated EventAction = "created"
	EventActionUpdated EventAction = "updated"
	EventActionDeleted EventAction = "deleted"
)

// ActivityEvent is published on the event bus after a successful mutation so
// downstream services (scheduler, reporting) can react without polling.
type ActivityEvent struct {
	ID         string      `json:"id"`
	EntityKind string      `json:"entity_kind"`
	EntityID   int64       `json:"entity_id"`
	Action     EventAction `json:"action"`
	ActorID    string      `json:"actor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}
