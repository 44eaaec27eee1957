package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
)

// publishEntityEvent fans a change event out to the firehose channel and the
// per-kind channel. Publishing is best effort and never blocks or fails the
// mutation that triggered it; a nil bus disables eventing entirely.
func publishEntityEvent(bus providers.EventBus, kind string, entityID int64, action entities.EventAction, audit entities.AuditInfo, payload interface{}) {
	if bus == nil {
		return
	}

	event := &entities.ActivityEvent{
		ID:         uuid.New().String(),
		EntityKind: kind,
		EntityID:   entityID,
		Action:     action,
		ActorID:    audit.ActorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		for _, channel := range []string{providers.EventChannelUpdates, providers.GetKindChannel(kind)} {
			if err := bus.Publish(ctx, channel, event); err != nil {
				observability.GetLogger().Warn().
					Err(err).
					Str("channel", channel).
					Str("entity_kind", kind).
					Int64("entity_id", entityID).
					Msg("Failed to publish entity event")
			}
		}
	}()
}
