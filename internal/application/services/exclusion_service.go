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

const kindExclusion = "centre_activity_exclusion"

// ExclusionService handles patient exclusions from centre activities
type ExclusionService struct {
	repo             repositories.ExclusionRepository
	centreActivities repositories.CentreActivityRepository
	bus              providers.EventBus
}

// NewExclusionService creates a new exclusion service
func NewExclusionService(
	repo repositories.ExclusionRepository,
	centreActivities repositories.CentreActivityRepository,
	bus providers.EventBus,
) *ExclusionService {
	return &ExclusionService{repo: repo, centreActivities: centreActivities, bus: bus}
}

// Create validates and inserts a new exclusion
func (s *ExclusionService) Create(ctx context.Context, exclusion *entities.CentreActivityExclusion, audit entities.AuditInfo) error {
	if err := s.validate(ctx, exclusion); err != nil {
		return err
	}

	exclusion.IsDeleted = false
	exclusion.CreatedDate, exclusion.ModifiedDate, exclusion.CreatedByID, exclusion.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, exclusion); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindExclusion, exclusion.ID, entities.EventActionCreated, audit, exclusion)
	return nil
}

// Get retrieves an exclusion by id
func (s *ExclusionService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityExclusion, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites an exclusion
func (s *ExclusionService) Update(ctx context.Context, exclusion *entities.CentreActivityExclusion, audit entities.AuditInfo) error {
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

	publishEntityEvent(s.bus, kindExclusion, exclusion.ID, entities.EventActionUpdated, audit, exclusion)
	return nil
}

// Delete soft-deletes an exclusion
func (s *ExclusionService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindExclusion, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves exclusions
func (s *ExclusionService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityExclusion, error) {
	return s.repo.List(ctx, filter)
}

func (s *ExclusionService) validate(ctx context.Context, exclusion *entities.CentreActivityExclusion) error {
	if strings.TrimSpace(exclusion.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if _, err := s.centreActivities.GetByID(ctx, exclusion.CentreActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("centre activity %d does not exist", exclusion.CentreActivityID))
		}
		return err
	}
	if exclusion.EndDate != nil && exclusion.EndDate.Before(exclusion.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}
