package services

import (
	"context"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// SuitabilityService blends doctor recommendations and the patient's own
// preference into a single score in [-1, 1]. Only the latest live row per
// doctor counts, and only the latest live preference. When one input is
// absent its weight shifts entirely onto the other; when both are absent the
// score is zero.
type SuitabilityService struct {
	centreActivities repositories.CentreActivityRepository
	recommendations  repositories.RecommendationRepository
	preferences      repositories.PreferenceRepository
}

// NewSuitabilityService creates a new suitability service
func NewSuitabilityService(
	centreActivities repositories.CentreActivityRepository,
	recommendations repositories.RecommendationRepository,
	preferences repositories.PreferenceRepository,
) *SuitabilityService {
	return &SuitabilityService{
		centreActivities: centreActivities,
		recommendations:  recommendations,
		preferences:      preferences,
	}
}

// Score computes the suitability of a centre activity for a patient.
func (s *SuitabilityService) Score(ctx context.Context, patientID string, centreActivityID int64) (*entities.SuitabilityScore, error) {
	ctx, span := observability.StartSpan(ctx, "SuitabilityService.Score")
	defer span.End()

	if patientID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}

	if _, err := s.centreActivities.GetByID(ctx, centreActivityID, false); err != nil {
		return nil, err
	}

	recs, err := s.recommendations.ListForPatientActivity(ctx, patientID, centreActivityID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.preferences.ListForPatientActivity(ctx, patientID, centreActivityID)
	if err != nil {
		return nil, err
	}

	// Rows arrive newest first, so the first row per doctor is its latest.
	seen := make(map[string]bool)
	recSum := 0
	recCount := 0
	for _, rec := range recs {
		if seen[rec.DoctorID] {
			continue
		}
		seen[rec.DoctorID] = true
		recSum += rec.DoctorRecommendation
		recCount++
	}

	score := &entities.SuitabilityScore{RecommendationCount: recCount}

	var recAvg, prefValue float64
	if recCount > 0 {
		recAvg = float64(recSum) / float64(recCount)
	}
	if len(prefs) > 0 {
		score.HasPreference = true
		prefValue = float64(prefs[0].IsLike)
	}

	switch {
	case recCount > 0 && score.HasPreference:
		score.Value = entities.RecommendationWeight*recAvg + entities.PreferenceWeight*prefValue
	case recCount > 0:
		score.Value = recAvg
	case score.HasPreference:
		score.Value = prefValue
	default:
		score.Value = 0
	}

	return score, nil
}
