package services

import (
	"context"
	"fmt"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

const kindAvailability = "centre_activity_availability"

// AvailabilityService handles explicit availability windows for flexible
// centre activities
type AvailabilityService struct {
	repo             repositories.AvailabilityRepository
	centreActivities repositories.CentreActivityRepository
	bus              providers.EventBus
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	repo repositories.AvailabilityRepository,
	centreActivities repositories.CentreActivityRepository,
	bus providers.EventBus,
) *AvailabilityService {
	return &AvailabilityService{repo: repo, centreActivities: centreActivities, bus: bus}
}

// Create validates and inserts a new availability window
func (s *AvailabilityService) Create(ctx context.Context, availability *entities.CentreActivityAvailability, audit entities.AuditInfo) error {
	if err := s.validate(ctx, availability); err != nil {
		return err
	}

	availability.IsDeleted = false
	availability.CreatedDate, availability.ModifiedDate, availability.CreatedByID, availability.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, availability); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindAvailability, availability.ID, entities.EventActionCreated, audit, availability)
	return nil
}

// Get retrieves an availability window by id
func (s *AvailabilityService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityAvailability, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites an availability window
func (s *AvailabilityService) Update(ctx context.Context, availability *entities.CentreActivityAvailability, audit entities.AuditInfo) error {
	if err := s.validate(ctx, availability); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, availability.ID, false)
	if err != nil {
		return err
	}

	availability.CreatedDate = existing.CreatedDate
	availability.CreatedByID = existing.CreatedByID
	availability.ModifiedDate = time.Now().UTC()
	availability.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, availability); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindAvailability, availability.ID, entities.EventActionUpdated, audit, availability)
	return nil
}

// Delete soft-deletes an availability window
func (s *AvailabilityService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindAvailability, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves availability windows
func (s *AvailabilityService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityAvailability, error) {
	return s.repo.List(ctx, filter)
}

func (s *AvailabilityService) validate(ctx context.Context, availability *entities.CentreActivityAvailability) error {
	ca, err := s.centreActivities.GetByID(ctx, availability.CentreActivityID, false)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("centre activity %d does not exist", availability.CentreActivityID))
		}
		return err
	}

	if !availability.StartTime.Before(availability.EndTime) {
		return apperrors.NewValidationError("start time must be before end time")
	}

	minutes := int(availability.EndTime.Sub(availability.StartTime) / time.Minute)
	if ca.MinDuration > 0 && minutes < ca.MinDuration {
		return apperrors.NewValidationError(
			fmt.Sprintf("window duration %dm is below the %dm minimum of centre activity %d", minutes, ca.MinDuration, ca.ID))
	}
	if ca.MaxDuration > 0 && minutes > ca.MaxDuration {
		return apperrors.NewValidationError(
			fmt.Sprintf("window duration %dm exceeds the %dm maximum of centre activity %d", minutes, ca.MaxDuration, ca.ID))
	}
	return nil
}
