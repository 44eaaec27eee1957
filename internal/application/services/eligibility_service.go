package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// EligibilityService decides whether a patient may attend a centre activity
// at a point in time. Approved substitutions are followed before exclusions
// are consulted, so a patient redirected away from a banned offering is
// reported as substituted, not excluded.
type EligibilityService struct {
	centreActivities repositories.CentreActivityRepository
	exclusions       repositories.ExclusionRepository
	adhocs           repositories.AdhocRepository
	metrics          *observability.Metrics
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(
	centreActivities repositories.CentreActivityRepository,
	exclusions repositories.ExclusionRepository,
	adhocs repositories.AdhocRepository,
	metrics *observability.Metrics,
) *EligibilityService {
	return &EligibilityService{
		centreActivities: centreActivities,
		exclusions:       exclusions,
		adhocs:           adhocs,
		metrics:          metrics,
	}
}

// CheckEligibility evaluates the rules for one (patient, centre activity,
// time) triple. Substitution chains are followed to their terminal offering;
// a chain that revisits an offering is corrupt data and surfaces as a
// substitution-cycle error.
func (s *EligibilityService) CheckEligibility(ctx context.Context, patientID string, centreActivityID int64, at time.Time) (*entities.EligibilityDecision, error) {
	ctx, span := observability.StartSpan(ctx, "EligibilityService.CheckEligibility")
	defer span.End()

	if patientID == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}

	decision, err := s.check(ctx, patientID, centreActivityID, at, map[int64]bool{})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.EligibilityChecks.Add(ctx, 1, metric.WithAttributes(
			attribute.String("eligibility.status", string(decision.Status)),
		))
	}
	return decision, nil
}

func (s *EligibilityService) check(ctx context.Context, patientID string, centreActivityID int64, at time.Time, visited map[int64]bool) (*entities.EligibilityDecision, error) {
	if visited[centreActivityID] {
		return nil, apperrors.NewSubstitutionCycleError(
			fmt.Sprintf("substitution chain revisits centre activity %d", centreActivityID))
	}
	visited[centreActivityID] = true

	ca, err := s.centreActivities.GetByID(ctx, centreActivityID, false)
	if err != nil {
		return nil, err
	}
	if !ca.IsSchedulable() {
		return nil, apperrors.NewInactiveActivityError(
			fmt.Sprintf("centre activity %d is inactive", centreActivityID))
	}

	adhoc, err := s.adhocs.FindApproved(ctx, patientID, centreActivityID, at)
	if err != nil {
		return nil, err
	}
	if adhoc != nil {
		sub, err := s.check(ctx, patientID, adhoc.NewCentreActivityID, at, visited)
		if err != nil {
			return nil, err
		}
		switch sub.Status {
		case entities.EligibilityEligible:
			terminal := adhoc.NewCentreActivityID
			return &entities.EligibilityDecision{
				Status:       entities.EligibilitySubstituted,
				SubstituteID: &terminal,
			}, nil
		default:
			// Either already carries the terminal substitute id, or the
			// substitute itself is excluded; report that verdict directly.
			return sub, nil
		}
	}

	exclusions, err := s.exclusions.ListForPatientActivity(ctx, patientID, centreActivityID)
	if err != nil {
		return nil, err
	}
	for _, exclusion := range exclusions {
		if exclusion.Covers(at) {
			return &entities.EligibilityDecision{
				Status: entities.EligibilityExcluded,
				Reason: exclusion.ExclusionRemarks,
			}, nil
		}
	}

	return &entities.EligibilityDecision{Status: entities.EligibilityEligible}, nil
}
