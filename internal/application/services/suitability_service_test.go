package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

func TestSuitabilityService_Score(t *testing.T) {
	const patient = "patient-1"
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	newService := func(recs []*entities.CentreActivityRecommendation, prefs []*entities.CentreActivityPreference) *SuitabilityService {
		caRepo := new(MockCentreActivityRepository)
		recRepo := new(MockRecommendationRepository)
		prefRepo := new(MockPreferenceRepository)

		caRepo.On("GetByID", mock.Anything, int64(10), false).Return(activeCentreActivity(10), nil)
		recRepo.On("ListForPatientActivity", mock.Anything, patient, int64(10)).Return(recs, nil)
		prefRepo.On("ListForPatientActivity", mock.Anything, patient, int64(10)).Return(prefs, nil)

		return NewSuitabilityService(caRepo, recRepo, prefRepo)
	}

	t.Run("blends recommendation and preference", func(t *testing.T) {
		svc := newService(
			[]*entities.CentreActivityRecommendation{
				{ID: 1, DoctorID: "doc-1", DoctorRecommendation: 1, CreatedDate: now},
			},
			[]*entities.CentreActivityPreference{
				{ID: 1, IsLike: -1, CreatedDate: now},
			},
		)

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		// 0.6*1 + 0.4*(-1)
		assert.InDelta(t, 0.2, score.Value, 1e-9)
		assert.Equal(t, 1, score.RecommendationCount)
		assert.True(t, score.HasPreference)
	})

	t.Run("only the latest row per doctor counts", func(t *testing.T) {
		svc := newService(
			[]*entities.CentreActivityRecommendation{
				// Newest first, matching repository ordering.
				{ID: 3, DoctorID: "doc-1", DoctorRecommendation: 1, CreatedDate: now},
				{ID: 2, DoctorID: "doc-2", DoctorRecommendation: -1, CreatedDate: now.Add(-time.Hour)},
				{ID: 1, DoctorID: "doc-1", DoctorRecommendation: -1, CreatedDate: now.Add(-2 * time.Hour)},
			},
			nil,
		)

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		// doc-1 latest is +1, doc-2 is -1, average 0; no preference so the
		// recommendation average carries full weight.
		assert.InDelta(t, 0, score.Value, 1e-9)
		assert.Equal(t, 2, score.RecommendationCount)
		assert.False(t, score.HasPreference)
	})

	t.Run("preference alone carries full weight", func(t *testing.T) {
		svc := newService(nil, []*entities.CentreActivityPreference{
			{ID: 1, IsLike: 1, CreatedDate: now},
		})

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		assert.InDelta(t, 1.0, score.Value, 1e-9)
		assert.Equal(t, 0, score.RecommendationCount)
		assert.True(t, score.HasPreference)
	})

	t.Run("recommendations alone carry full weight", func(t *testing.T) {
		svc := newService([]*entities.CentreActivityRecommendation{
			{ID: 1, DoctorID: "doc-1", DoctorRecommendation: -1, CreatedDate: now},
		}, nil)

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		assert.InDelta(t, -1.0, score.Value, 1e-9)
	})

	t.Run("no inputs score zero", func(t *testing.T) {
		svc := newService(nil, nil)

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		assert.Zero(t, score.Value)
		assert.Equal(t, 0, score.RecommendationCount)
		assert.False(t, score.HasPreference)
	})

	t.Run("only the latest preference counts", func(t *testing.T) {
		svc := newService(nil, []*entities.CentreActivityPreference{
			{ID: 2, IsLike: -1, CreatedDate: now},
			{ID: 1, IsLike: 1, CreatedDate: now.Add(-time.Hour)},
		})

		score, err := svc.Score(context.Background(), patient, 10)

		require.NoError(t, err)
		assert.InDelta(t, -1.0, score.Value, 1e-9)
	})
}
