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

func weeklyRoutine() *entities.Routine {
	return &entities.Routine{
		ID:           5,
		Name:         "Monday morning tai chi",
		ActivityID:   2,
		PatientID:    "patient-001",
		DayOfWeek:    0,
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestRoutineService_Occurrences(t *testing.T) {
	// 2026-03-02 is a Monday.
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)

	t.Run("materializes one occurrence per matching weekday", func(t *testing.T) {
		routineRepo := new(MockRoutineRepository)
		exclRepo := new(MockRoutineExclusionRepository)
		routineRepo.On("GetByID", mock.Anything, int64(5), false).Return(weeklyRoutine(), nil)
		exclRepo.On("ListForRoutine", mock.Anything, int64(5)).
			Return([]*entities.RoutineExclusion{}, nil)

		svc := NewRoutineService(routineRepo, new(MockActivityRepository), exclRepo, nil)
		occurrences, err := svc.Occurrences(context.Background(), 5, from, to)

		require.NoError(t, err)
		require.Len(t, occurrences, 2)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
		assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), occurrences[0].End)
		assert.Equal(t, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), occurrences[1].Start)
		assert.Equal(t, "patient-001", occurrences[0].PatientID)
	})

	t.Run("suspension punches out covered occurrences", func(t *testing.T) {
		routineRepo := new(MockRoutineRepository)
		exclRepo := new(MockRoutineExclusionRepository)
		routineRepo.On("GetByID", mock.Anything, int64(5), false).Return(weeklyRoutine(), nil)
		exclRepo.On("ListForRoutine", mock.Anything, int64(5)).
			Return([]*entities.RoutineExclusion{
				{
					ID:        1,
					RoutineID: 5,
					StartDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					Remarks:   "family holiday",
				},
			}, nil)

		svc := NewRoutineService(routineRepo, new(MockActivityRepository), exclRepo, nil)
		occurrences, err := svc.Occurrences(context.Background(), 5, from, to)

		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
	})

	t.Run("stops recurring past the routine end date", func(t *testing.T) {
		routineRepo := new(MockRoutineRepository)
		exclRepo := new(MockRoutineExclusionRepository)
		routine := weeklyRoutine()
		routine.EndDate = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		routineRepo.On("GetByID", mock.Anything, int64(5), false).Return(routine, nil)
		exclRepo.On("ListForRoutine", mock.Anything, int64(5)).
			Return([]*entities.RoutineExclusion{}, nil)

		svc := NewRoutineService(routineRepo, new(MockActivityRepository), exclRepo, nil)
		occurrences, err := svc.Occurrences(context.Background(), 5, from, to)

		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		svc := NewRoutineService(new(MockRoutineRepository), new(MockActivityRepository), new(MockRoutineExclusionRepository), nil)
		_, err := svc.Occurrences(context.Background(), 5, to, from)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestRoutineService_Create(t *testing.T) {
	audit := entities.AuditInfo{ActorID: "supervisor-1"}

	t.Run("creates a valid routine", func(t *testing.T) {
		routineRepo := new(MockRoutineRepository)
		activityRepo := new(MockActivityRepository)
		activityRepo.On("GetByID", mock.Anything, int64(2), false).
			Return(&entities.Activity{ID: 2, Active: true, Title: "Morning Tai Chi"}, nil)
		routineRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Routine) bool {
			return !r.IsDeleted && r.CreatedByID == "supervisor-1"
		})).Return(nil)

		svc := NewRoutineService(routineRepo, activityRepo, new(MockRoutineExclusionRepository), nil)
		routine := weeklyRoutine()
		routine.ID = 0

		require.NoError(t, svc.Create(context.Background(), routine, audit))
		routineRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown activity", func(t *testing.T) {
		routineRepo := new(MockRoutineRepository)
		activityRepo := new(MockActivityRepository)
		activityRepo.On("GetByID", mock.Anything, int64(2), false).
			Return(nil, apperrors.NewNotFoundError("activity with id 2 not found"))

		svc := NewRoutineService(routineRepo, activityRepo, new(MockRoutineExclusionRepository), nil)
		err := svc.Create(context.Background(), weeklyRoutine(), audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		routineRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects a day of week outside the schedule convention", func(t *testing.T) {
		activityRepo := new(MockActivityRepository)
		activityRepo.On("GetByID", mock.Anything, int64(2), false).
			Return(&entities.Activity{ID: 2, Active: true}, nil)

		svc := NewRoutineService(new(MockRoutineRepository), activityRepo, new(MockRoutineExclusionRepository), nil)
		routine := weeklyRoutine()
		routine.DayOfWeek = 7

		err := svc.Create(context.Background(), routine, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects an inverted time window", func(t *testing.T) {
		activityRepo := new(MockActivityRepository)
		activityRepo.On("GetByID", mock.Anything, int64(2), false).
			Return(&entities.Activity{ID: 2, Active: true}, nil)

		svc := NewRoutineService(new(MockRoutineRepository), activityRepo, new(MockRoutineExclusionRepository), nil)
		routine := weeklyRoutine()
		routine.StartMinutes = 10 * 60
		routine.EndMinutes = 9 * 60

		err := svc.Create(context.Background(), routine, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		svc := NewRoutineService(new(MockRoutineRepository), new(MockActivityRepository), new(MockRoutineExclusionRepository), nil)
		routine := weeklyRoutine()
		routine.Name = ""

		err := svc.Create(context.Background(), routine, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
