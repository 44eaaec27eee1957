package providers

import (
	"context"
	"time"
)

// SlotWindow is the wall-clock placement of one slot index on one weekday:
// an offset from midnight plus a duration.
type SlotWindow struct {
	StartOfDay time.Duration
	Duration   time.Duration
}

// ScheduleConfigProvider exposes the centre-wide mapping from (weekday,
// slot index) to wall-clock windows. The mapping is owned by an external
// configuration collaborator and consumed read-only here.
type ScheduleConfigProvider interface {
	// SlotWindow returns the window for the given weekday (0=Monday..6=Sunday)
	// and slot index. A not-found error is returned for unconfigured pairs.
	SlotWindow(ctx context.Context, weekday, slotIndex int) (SlotWindow, error)
}
