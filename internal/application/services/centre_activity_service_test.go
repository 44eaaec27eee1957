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

func TestCentreActivityService_Create(t *testing.T) {
	audit := entities.AuditInfo{ActorID: "admin-1"}
	activity := &entities.Activity{ID: 1, Active: true, Title: "Mahjong", StartDate: time.Now()}

	valid := func() *entities.CentreActivity {
		return &entities.CentreActivity{
			ActivityID:     1,
			Active:         true,
			IsFixed:        true,
			MinDuration:    30,
			MaxDuration:    60,
			FixedTimeSlots: "0-3,1-3",
		}
	}

	t.Run("creates a valid offering", func(t *testing.T) {
		actRepo := new(MockActivityRepository)
		caRepo := new(MockCentreActivityRepository)
		actRepo.On("GetByID", mock.Anything, int64(1), false).Return(activity, nil)
		caRepo.On("Create", mock.Anything, mock.MatchedBy(func(ca *entities.CentreActivity) bool {
			return ca.CreatedByID == "admin-1" && !ca.IsDeleted
		})).Return(nil)

		svc := NewCentreActivityService(caRepo, actRepo, nil)
		err := svc.Create(context.Background(), valid(), audit)

		require.NoError(t, err)
		caRepo.AssertExpectations(t)
	})

	t.Run("rejects a missing activity template", func(t *testing.T) {
		actRepo := new(MockActivityRepository)
		actRepo.On("GetByID", mock.Anything, int64(1), false).
			Return(nil, apperrors.NewNotFoundError("activity with id 1 not found"))

		svc := NewCentreActivityService(new(MockCentreActivityRepository), actRepo, nil)
		err := svc.Create(context.Background(), valid(), audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects inverted duration bounds", func(t *testing.T) {
		actRepo := new(MockActivityRepository)
		actRepo.On("GetByID", mock.Anything, int64(1), false).Return(activity, nil)

		ca := valid()
		ca.MinDuration = 60
		ca.MaxDuration = 30

		svc := NewCentreActivityService(new(MockCentreActivityRepository), actRepo, nil)
		err := svc.Create(context.Background(), ca, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects malformed fixed time slots", func(t *testing.T) {
		actRepo := new(MockActivityRepository)
		actRepo.On("GetByID", mock.Anything, int64(1), false).Return(activity, nil)

		ca := valid()
		ca.FixedTimeSlots = "7-1"

		svc := NewCentreActivityService(new(MockCentreActivityRepository), actRepo, nil)
		err := svc.Create(context.Background(), ca, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("accepts fixed offering without slot encoding", func(t *testing.T) {
		actRepo := new(MockActivityRepository)
		caRepo := new(MockCentreActivityRepository)
		actRepo.On("GetByID", mock.Anything, int64(1), false).Return(activity, nil)
		caRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		ca := valid()
		ca.FixedTimeSlots = ""

		svc := NewCentreActivityService(caRepo, actRepo, nil)
		err := svc.Create(context.Background(), ca, audit)

		require.NoError(t, err)
	})
}
