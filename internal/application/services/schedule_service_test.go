package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carecentral/activity-service/internal/domain/entities"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

func fixedCentreActivity(slots string) *entities.CentreActivity {
	return &entities.CentreActivity{
		ID:             10,
		ActivityID:     1,
		Active:         true,
		IsFixed:        true,
		MinDuration:    30,
		MaxDuration:    60,
		FixedTimeSlots: slots,
	}
}

func TestScheduleService_ResolveSchedule(t *testing.T) {
	// 2026-03-02 is a Monday.
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	t.Run("expands fixed slots over the range", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(fixedCentreActivity("0-3"), nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.NoError(t, err)
		// Two Mondays in a two-week range, slot index 3 starts at 12:00.
		require.Len(t, slots, 2)
		assert.Equal(t, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), slots[0].End)
		assert.Equal(t, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), slots[1].Start)
		assert.Equal(t, entities.SlotSourceFixed, slots[0].Source)
		require.NotNil(t, slots[0].Weekday)
		assert.Equal(t, 0, *slots[0].Weekday)
		require.NotNil(t, slots[0].SlotIndex)
		assert.Equal(t, 3, *slots[0].SlotIndex)
		availRepo.AssertNotCalled(t, "ListOverlapping")
	})

	t.Run("returns slots ordered by start across weekdays", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(fixedCentreActivity("2-0,0-3"), nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, from.AddDate(0, 0, 7))

		require.NoError(t, err)
		require.Len(t, slots, 2)
		// Monday slot 3 precedes Wednesday slot 0.
		assert.True(t, slots[0].Start.Before(slots[1].Start))
		assert.Equal(t, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), slots[0].Start)
		assert.Equal(t, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), slots[1].Start)
	})

	t.Run("rejects slot durations outside the activity bounds", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		ca := fixedCentreActivity("0-3")
		ca.MaxDuration = 30
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		_, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConstraintViolation))
	})

	t.Run("rejects references to unconfigured slots", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(fixedCentreActivity("0-99"), nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		_, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConstraintViolation))
	})

	t.Run("fixed activity without slot encoding resolves as flexible", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(fixedCentreActivity(""), nil)
		availRepo.On("ListOverlapping", mock.Anything, int64(10), from, to).
			Return([]*entities.CentreActivityAvailability{}, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.NoError(t, err)
		assert.Empty(t, slots)
		availRepo.AssertExpectations(t)
	})

	t.Run("flexible activity surfaces availability windows", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		ca := fixedCentreActivity("")
		ca.IsFixed = false
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		start := from.Add(26 * time.Hour)
		availRepo.On("ListOverlapping", mock.Anything, int64(10), from, to).
			Return([]*entities.CentreActivityAvailability{
				{ID: 1, CentreActivityID: 10, StartTime: start, EndTime: start.Add(45 * time.Minute)},
			}, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, entities.SlotSourceAvailability, slots[0].Source)
		assert.Equal(t, start, slots[0].Start)
		assert.Nil(t, slots[0].Weekday)
	})

	t.Run("rejects availability windows outside the duration bounds", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		ca := fixedCentreActivity("")
		ca.IsFixed = false
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		start := from.Add(26 * time.Hour)
		availRepo.On("ListOverlapping", mock.Anything, int64(10), from, to).
			Return([]*entities.CentreActivityAvailability{
				{ID: 1, CentreActivityID: 10, StartTime: start, EndTime: start.Add(10 * time.Minute)},
			}, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		_, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConstraintViolation))
	})

	t.Run("surfaces availability windows overlapping the range start", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		ca := fixedCentreActivity("")
		ca.IsFixed = false
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		// Starts half an hour before the range but runs into it.
		start := from.Add(-30 * time.Minute)
		availRepo.On("ListOverlapping", mock.Anything, int64(10), from, to).
			Return([]*entities.CentreActivityAvailability{
				{ID: 1, CentreActivityID: 10, StartTime: start, EndTime: start.Add(time.Hour)},
			}, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, start, slots[0].Start)
		assert.Equal(t, start.Add(time.Hour), slots[0].End)
	})

	t.Run("inactive activity yields no slots", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		availRepo := new(MockAvailabilityRepository)
		ca := fixedCentreActivity("0-3")
		ca.Active = false
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		svc := NewScheduleService(caRepo, availRepo, stubSlotConfig{}, nil)
		slots, err := svc.ResolveSchedule(context.Background(), 10, from, to)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		svc := NewScheduleService(new(MockCentreActivityRepository), new(MockAvailabilityRepository), stubSlotConfig{}, nil)
		_, err := svc.ResolveSchedule(context.Background(), 10, to, from)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
