package entities

import "time"

// SlotSource identifies which scheduling rule produced a time slot.
type SlotSource string

const (
	// SlotSourceFixed marks slots expanded from the fixed_time_slots encoding.
	SlotSourceFixed SlotSource = "fixed"

	// SlotSourceAvailability marks slots taken from explicit availability rows.
	SlotSourceAvailability SlotSource = "availability"
)

// TimeSlot is one concrete schedulable window for a centre activity. Slots
// from both sources are surfaced side by side; the resolver does not
// deduplicate across sources.
type TimeSlot struct {
	CentreActivityID int64      `json:"centre_activity_id"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	Source           SlotSource `json:"source"`

	// Weekday and SlotIndex are set only for fixed-source slots.
	Weekday   *int `json:"weekday,omitempty"`
	SlotIndex *int `json:"slot_index,omitempty"`
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// GoWeekday converts a schedule weekday (0=Monday..6=Sunday) to time.Weekday.
func GoWeekday(weekday int) time.Weekday {
	return time.Weekday((weekday + 1) % 7)
}

// ScheduleWeekday converts a time.Weekday to the schedule convention
// (0=Monday..6=Sunday).
func ScheduleWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
