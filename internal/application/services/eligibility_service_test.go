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

func activeCentreActivity(id int64) *entities.CentreActivity {
	return &entities.CentreActivity{ID: id, ActivityID: 1, Active: true, MinDuration: 30, MaxDuration: 60}
}

func TestEligibilityService_CheckEligibility(t *testing.T) {
	at := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	const patient = "patient-1"

	t.Run("eligible when no rule applies", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(nil, nil)
		exclRepo.On("ListForPatientActivity", mock.Anything, patient, int64(10)).
			Return([]*entities.CentreActivityExclusion{}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		decision, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.NoError(t, err)
		assert.Equal(t, entities.EligibilityEligible, decision.Status)
		assert.Nil(t, decision.SubstituteID)
	})

	t.Run("excluded when a ban covers the time", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(nil, nil)
		exclRepo.On("ListForPatientActivity", mock.Anything, patient, int64(10)).
			Return([]*entities.CentreActivityExclusion{
				{ID: 1, CentreActivityID: 10, PatientID: patient, ExclusionRemarks: "mobility restriction", StartDate: at.AddDate(0, 0, -1)},
			}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		decision, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.NoError(t, err)
		assert.Equal(t, entities.EligibilityExcluded, decision.Status)
		assert.Equal(t, "mobility restriction", decision.Reason)
	})

	t.Run("expired ban does not exclude", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		end := at.AddDate(0, 0, -1)
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(nil, nil)
		exclRepo.On("ListForPatientActivity", mock.Anything, patient, int64(10)).
			Return([]*entities.CentreActivityExclusion{
				{ID: 1, CentreActivityID: 10, PatientID: patient, StartDate: at.AddDate(0, 0, -10), EndDate: &end},
			}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		decision, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.NoError(t, err)
		assert.Equal(t, entities.EligibilityEligible, decision.Status)
	})

	t.Run("substitution wins over an exclusion on the original", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		caRepo.On("GetByID", mock.Anything, int64(20), false).Return(activeCentreActivity(20), nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(&entities.Adhoc{
			ID: 1, OldCentreActivityID: 10, NewCentreActivityID: 20, PatientID: patient,
			Status: entities.AdhocStatusApproved, StartTime: at.Add(-time.Hour), EndTime: at.Add(time.Hour),
		}, nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(20), at).Return(nil, nil)
		exclRepo.On("ListForPatientActivity", mock.Anything, patient, int64(20)).
			Return([]*entities.CentreActivityExclusion{}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		decision, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.NoError(t, err)
		assert.Equal(t, entities.EligibilitySubstituted, decision.Status)
		require.NotNil(t, decision.SubstituteID)
		assert.Equal(t, int64(20), *decision.SubstituteID)
		// The exclusion list of the original is never consulted.
		exclRepo.AssertNotCalled(t, "ListForPatientActivity", mock.Anything, patient, int64(10))
	})

	t.Run("chain of substitutions reports the terminal offering", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		for _, id := range []int64{10, 20, 30} {
			caRepo.On("GetByID", mock.Anything, id, false).Return(activeCentreActivity(id), nil)
		}
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(&entities.Adhoc{
			ID: 1, OldCentreActivityID: 10, NewCentreActivityID: 20, Status: entities.AdhocStatusApproved,
		}, nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(20), at).Return(&entities.Adhoc{
			ID: 2, OldCentreActivityID: 20, NewCentreActivityID: 30, Status: entities.AdhocStatusApproved,
		}, nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(30), at).Return(nil, nil)
		exclRepo.On("ListForPatientActivity", mock.Anything, patient, int64(30)).
			Return([]*entities.CentreActivityExclusion{}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		decision, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.NoError(t, err)
		assert.Equal(t, entities.EligibilitySubstituted, decision.Status)
		require.NotNil(t, decision.SubstituteID)
		assert.Equal(t, int64(30), *decision.SubstituteID)
	})

	t.Run("cyclic substitution chain fails", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		caRepo.On("GetByID", mock.Anything, int64(20), false).Return(activeCentreActivity(20), nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(10), at).Return(&entities.Adhoc{
			ID: 1, OldCentreActivityID: 10, NewCentreActivityID: 20, Status: entities.AdhocStatusApproved,
		}, nil)
		adhocRepo.On("FindApproved", mock.Anything, patient, int64(20), at).Return(&entities.Adhoc{
			ID: 2, OldCentreActivityID: 20, NewCentreActivityID: 10, Status: entities.AdhocStatusApproved,
		}, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		_, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSubstitutionCycle))
	})

	t.Run("inactive activity fails", func(t *testing.T) {
		caRepo := new(MockCentreActivityRepository)
		exclRepo := new(MockExclusionRepository)
		adhocRepo := new(MockAdhocRepository)

		ca := activeCentreActivity(10)
		ca.Active = false
		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(ca, nil)

		svc := NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		_, err := svc.CheckEligibility(context.Background(), patient, 10, at)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInactiveActivity))
	})

	t.Run("requires a patient id", func(t *testing.T) {
		svc := NewEligibilityService(new(MockCentreActivityRepository), new(MockExclusionRepository), new(MockAdhocRepository), nil)
		_, err := svc.CheckEligibility(context.Background(), "", 10, at)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
