package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/carecentral/activity-service/internal/domain/providers"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// StaticProvider serves a uniform daily slot grid without touching the
// database. Used when no slot configuration table is provisioned and by
// tests that need deterministic windows.
type StaticProvider struct {
	dayStart     time.Duration
	slotDuration time.Duration
	slotsPerDay  int
}

var _ providers.ScheduleConfigProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider whose slots start at dayStart and run
// back to back, slotDuration each, slotsPerDay per weekday.
func NewStaticProvider(dayStart, slotDuration time.Duration, slotsPerDay int) *StaticProvider {
	return &StaticProvider{
		dayStart:     dayStart,
		slotDuration: slotDuration,
		slotsPerDay:  slotsPerDay,
	}
}

// NewDefaultStaticProvider covers a standard centre day: eight one-hour
// slots from 09:00, every weekday.
func NewDefaultStaticProvider() *StaticProvider {
	return NewStaticProvider(9*time.Hour, time.Hour, 8)
}

// SlotWindow returns the window for the given weekday and slot index
func (p *StaticProvider) SlotWindow(_ context.Context, weekday, slotIndex int) (providers.SlotWindow, error) {
	if weekday < 0 || weekday > 6 {
		return providers.SlotWindow{}, apperrors.NewNotFoundError(fmt.Sprintf("no slot configured for weekday %d index %d", weekday, slotIndex))
	}
	if slotIndex < 0 || slotIndex >= p.slotsPerDay {
		return providers.SlotWindow{}, apperrors.NewNotFoundError(fmt.Sprintf("no slot configured for weekday %d index %d", weekday, slotIndex))
	}
	return providers.SlotWindow{
		StartOfDay: p.dayStart + time.Duration(slotIndex)*p.slotDuration,
		Duration:   p.slotDuration,
	}, nil
}
