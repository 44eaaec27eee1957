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

const kindActivityExclusion = "activity_exclusion"

// ActivityExclusionService handles patient exclusions at the activity
// template level, banning every centre offering of the activity at once
type ActivityExclusionService struct {
	repo       repositories.ActivityExclusionRepository
	activities repositories.ActivityRepository
	bus        providers.EventBus
}

// NewActivityExclusionService creates a new activity exclusion service
func NewActivityExclusionService(
	repo repositories.ActivityExclusionRepository,
	activities repositories.ActivityRepository,
	bus providers.EventBus,
) *ActivityExclusionService {
	return &ActivityExclusionService{repo: repo, activities: activities, bus: bus}
}

// Create validates and inserts a new activity exclusion
func (s *ActivityExclusionService) Create(ctx context.Context, exclusion *entities.ActivityExclusion, audit entities.AuditInfo) error {
	if err := s.validate(ctx, exclusion); err != nil {
		return err
	}

	exclusion.IsDeleted = false
	exclusion.CreatedDate, exclusion.ModifiedDate, exclusion.CreatedByID, exclusion.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, exclusion); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindActivityExclusion, exclusion.ID, entities.EventActionCreated, audit, exclusion)
	return nil
}

// Get retrieves an activity exclusion by id
func (s *ActivityExclusionService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.ActivityExclusion, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites an activity exclusion
func (s *ActivityExclusionService) Update(ctx context.Context, exclusion *entities.ActivityExclusion, audit entities.AuditInfo) error {
	if err := s.validate(ctx, exclusion); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, exclusion.ID, false)
	if err != nil {
		return err
	}

	exclusion.CreatedDate = existing.CreatedDate
	exclusion.CreatedByID = existing.CreatedByID
	exclusion.ModifiedDate = time.Now().UTC()
	exclusion.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, exclusion); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindActivityExclusion, exclusion.ID, entities.EventActionUpdated, audit, exclusion)
	return nil
}

// Delete soft-deletes an activity exclusion
func (s *ActivityExclusionService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindActivityExclusion, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves activity exclusions
func (s *ActivityExclusionService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.ActivityExclusion, error) {
	return s.repo.List(ctx, filter)
}

func (s *ActivityExclusionService) validate(ctx context.Context, exclusion *entities.ActivityExclusion) error {
	if strings.TrimSpace(exclusion.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if _, err := s.activities.GetByID(ctx, exclusion.ActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("activity %d does not exist", exclusion.ActivityID))
		}
		return err
	}
	if exclusion.EndDate != nil && exclusion.EndDate.Before(exclusion.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}
