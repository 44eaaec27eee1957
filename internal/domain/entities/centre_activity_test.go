package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

func TestParseFixedTimeSlots(t *testing.T) {
	t.Run("parses day-slot pairs", func(t *testing.T) {
		refs, err := entities.ParseFixedTimeSlots("0-3,1-3")
		require.NoError(t, err)
		assert.Equal(t, []entities.SlotRef{
			{Weekday: 0, SlotIndex: 3},
			{Weekday: 1, SlotIndex: 3},
		}, refs)
	})

	t.Run("tolerates whitespace", func(t *testing.T) {
		refs, err := entities.ParseFixedTimeSlots(" 2-1 , 4-0 ")
		require.NoError(t, err)
		assert.Len(t, refs, 2)
	})

	t.Run("empty string means no fixed slots", func(t *testing.T) {
		refs, err := entities.ParseFixedTimeSlots("")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("rejects malformed tokens", func(t *testing.T) {
		for _, bad := range []string{"03", "7-1", "-1-2", "0-x", "a-1"} {
			_, err := entities.ParseFixedTimeSlots(bad)
			assert.Error(t, err, "token %q should not parse", bad)
		}
	})
}

func TestCentreActivity_HasFixedSlots(t *testing.T) {
	ca := &entities.CentreActivity{IsFixed: true, FixedTimeSlots: "0-3"}
	assert.True(t, ca.HasFixedSlots())

	// Inconsistent seed rows: fixed flag set but no slots encoded.
	ca = &entities.CentreActivity{IsFixed: true, FixedTimeSlots: "  "}
	assert.False(t, ca.HasFixedSlots())

	ca = &entities.CentreActivity{IsFixed: false, FixedTimeSlots: "0-3"}
	assert.False(t, ca.HasFixedSlots())
}

func TestScheduleWeekdayMapping(t *testing.T) {
	// 0=Monday..6=Sunday on the wire; Go counts Sunday=0.
	assert.Equal(t, time.Monday, entities.GoWeekday(0))
	assert.Equal(t, time.Sunday, entities.GoWeekday(6))
	assert.Equal(t, 0, entities.ScheduleWeekday(time.Monday))
	assert.Equal(t, 6, entities.ScheduleWeekday(time.Sunday))

	for wd := 0; wd < 7; wd++ {
		assert.Equal(t, wd, entities.ScheduleWeekday(entities.GoWeekday(wd)))
	}
}

func TestExclusion_Covers(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("open-ended exclusion never expires", func(t *testing.T) {
		e := &entities.CentreActivityExclusion{StartDate: start}
		assert.True(t, e.Covers(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
		assert.False(t, e.Covers(start.Add(-time.Hour)))
	})

	t.Run("bounded exclusion is inclusive of the end date", func(t *testing.T) {
		end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		e := &entities.CentreActivityExclusion{StartDate: start, EndDate: &end}
		assert.True(t, e.Covers(end))
		assert.False(t, e.Covers(end.Add(time.Second)))
	})
}

func TestAdhoc_StateMachine(t *testing.T) {
	pending := &entities.Adhoc{Status: entities.AdhocStatusPending}
	assert.True(t, pending.CanTransitionTo(entities.AdhocStatusApproved))
	assert.True(t, pending.CanTransitionTo(entities.AdhocStatusRejected))
	assert.False(t, pending.CanTransitionTo(entities.AdhocStatusPending))

	approved := &entities.Adhoc{Status: entities.AdhocStatusApproved}
	assert.False(t, approved.CanTransitionTo(entities.AdhocStatusRejected))
}

func TestAdhoc_Covers(t *testing.T) {
	a := &entities.Adhoc{
		StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
	}
	// Half-open window: start inclusive, end exclusive.
	assert.True(t, a.Covers(a.StartTime))
	assert.True(t, a.Covers(a.StartTime.Add(time.Hour)))
	assert.False(t, a.Covers(a.EndTime))
}
