package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

const kindRecommendation = "centre_activity_recommendation"

// RecommendationService handles doctor recommendations. The store enforces
// one live row per (centre activity, patient, doctor); a duplicate create
// surfaces as a conflict.
type RecommendationService struct {
	repo             repositories.RecommendationRepository
	centreActivities repositories.CentreActivityRepository
	bus              providers.EventBus
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	repo repositories.RecommendationRepository,
	centreActivities repositories.CentreActivityRepository,
	bus providers.EventBus,
) *RecommendationService {
	return &RecommendationService{repo: repo, centreActivities: centreActivities, bus: bus}
}

// Create validates and inserts a new recommendation
func (s *RecommendationService) Create(ctx context.Context, rec *entities.CentreActivityRecommendation, audit entities.AuditInfo) error {
	if err := s.validate(ctx, rec); err != nil {
		return err
	}

	rec.IsDeleted = false
	rec.CreatedDate, rec.ModifiedDate, rec.CreatedByID, rec.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, rec); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindRecommendation, rec.ID, entities.EventActionCreated, audit, rec)
	return nil
}

// Get retrieves a recommendation by id
func (s *RecommendationService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityRecommendation, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a recommendation
func (s *RecommendationService) Update(ctx context.Context, rec *entities.CentreActivityRecommendation, audit entities.AuditInfo) error {
	if err := s.validate(ctx, rec); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, rec.ID, false)
	if err != nil {
		return err
	}

	rec.CreatedDate = existing.CreatedDate
	rec.CreatedByID = existing.CreatedByID
	rec.ModifiedDate = time.Now().UTC()
	rec.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, rec); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindRecommendation, rec.ID, entities.EventActionUpdated, audit, rec)
	return nil
}

// Delete soft-deletes a recommendation
func (s *RecommendationService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindRecommendation, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves recommendations
func (s *RecommendationService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityRecommendation, error) {
	return s.repo.List(ctx, filter)
}

func (s *RecommendationService) validate(ctx context.Context, rec *entities.CentreActivityRecommendation) error {
	if strings.TrimSpace(rec.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if strings.TrimSpace(rec.DoctorID) == "" {
		return apperrors.NewValidationError("doctor id is required")
	}
	if !entities.ValidRating(rec.DoctorRecommendation) {
		return apperrors.NewValidationError("doctor recommendation must be -1, 0 or 1")
	}
	if _, err := s.centreActivities.GetByID(ctx, rec.CentreActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("centre activity %d does not exist", rec.CentreActivityID))
		}
		return err
	}
	return nil
}
