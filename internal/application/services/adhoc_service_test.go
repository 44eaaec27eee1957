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

func pendingAdhoc(modified time.Time) *entities.Adhoc {
	return &entities.Adhoc{
		ID:                  1,
		OldCentreActivityID: 10,
		NewCentreActivityID: 20,
		PatientID:           "patient-1",
		Status:              entities.AdhocStatusPending,
		StartTime:           modified,
		EndTime:             modified.Add(24 * time.Hour),
		ModifiedDate:        modified,
	}
}

func TestAdhocService_Approve(t *testing.T) {
	modified := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	audit := entities.AuditInfo{ActorID: "supervisor-1"}

	t.Run("approves a pending request", func(t *testing.T) {
		repo := new(MockAdhocRepository)
		approved := pendingAdhoc(modified)
		approved.Status = entities.AdhocStatusApproved

		repo.On("GetByID", mock.Anything, int64(1), false).Return(pendingAdhoc(modified), nil).Once()
		repo.On("TransitionStatus", mock.Anything, int64(1), entities.AdhocStatusApproved, modified, audit).Return(nil)
		repo.On("GetByID", mock.Anything, int64(1), false).Return(approved, nil).Once()

		svc := NewAdhocService(repo, new(MockCentreActivityRepository), nil)
		updated, err := svc.Approve(context.Background(), 1, modified, audit)

		require.NoError(t, err)
		assert.Equal(t, entities.AdhocStatusApproved, updated.Status)
		repo.AssertExpectations(t)
	})

	t.Run("already decided request conflicts", func(t *testing.T) {
		repo := new(MockAdhocRepository)
		decided := pendingAdhoc(modified)
		decided.Status = entities.AdhocStatusRejected
		repo.On("GetByID", mock.Anything, int64(1), false).Return(decided, nil)

		svc := NewAdhocService(repo, new(MockCentreActivityRepository), nil)
		_, err := svc.Approve(context.Background(), 1, modified, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent decision surfaces stale state", func(t *testing.T) {
		repo := new(MockAdhocRepository)
		repo.On("GetByID", mock.Anything, int64(1), false).Return(pendingAdhoc(modified), nil)
		repo.On("TransitionStatus", mock.Anything, int64(1), entities.AdhocStatusApproved, modified, audit).
			Return(apperrors.NewStaleStateError("adhoc 1 was modified concurrently"))

		svc := NewAdhocService(repo, new(MockCentreActivityRepository), nil)
		_, err := svc.Approve(context.Background(), 1, modified, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStaleState))
	})
}

func TestAdhocService_Create(t *testing.T) {
	audit := entities.AuditInfo{ActorID: "coordinator-1"}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("forces pending status and stamps audit fields", func(t *testing.T) {
		repo := new(MockAdhocRepository)
		caRepo := new(MockCentreActivityRepository)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		caRepo.On("GetByID", mock.Anything, int64(20), false).Return(activeCentreActivity(20), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Adhoc) bool {
			return a.Status == entities.AdhocStatusPending && a.CreatedByID == "coordinator-1"
		})).Return(nil)

		svc := NewAdhocService(repo, caRepo, nil)
		adhoc := &entities.Adhoc{
			OldCentreActivityID: 10,
			NewCentreActivityID: 20,
			PatientID:           "patient-1",
			Status:              entities.AdhocStatusApproved, // caller cannot pre-approve
			StartTime:           start,
			EndTime:             start.AddDate(0, 0, 7),
		}
		err := svc.Create(context.Background(), adhoc, audit)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects self-substitution", func(t *testing.T) {
		svc := NewAdhocService(new(MockAdhocRepository), new(MockCentreActivityRepository), nil)
		err := svc.Create(context.Background(), &entities.Adhoc{
			OldCentreActivityID: 10,
			NewCentreActivityID: 10,
			PatientID:           "patient-1",
			StartTime:           start,
			EndTime:             start.AddDate(0, 0, 7),
		}, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		svc := NewAdhocService(new(MockAdhocRepository), new(MockCentreActivityRepository), nil)
		err := svc.Create(context.Background(), &entities.Adhoc{
			OldCentreActivityID: 10,
			NewCentreActivityID: 20,
			PatientID:           "patient-1",
			StartTime:           start.AddDate(0, 0, 7),
			EndTime:             start,
		}, audit)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
