package providers

import (
	"context"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to entity
// change events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ActivityEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ActivityEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants for different event scopes
const (
	// EventChannelUpdates is the firehose channel for all entity changes
	EventChannelUpdates = "activities:updates"

	// EventChannelKindPrefix is the prefix for per-entity-kind channels
	EventChannelKindPrefix = "activities:"
)

// GetKindChannel returns the channel name for one entity kind.
func GetKindChannel(kind string) string {
	return EventChannelKindPrefix + kind
}
