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

const kindRoutineExclusion = "routine_exclusion"

// RoutineExclusionService handles suspensions of patient routines
type RoutineExclusionService struct {
	repo     repositories.RoutineExclusionRepository
	routines repositories.RoutineRepository
	bus      providers.EventBus
}

// NewRoutineExclusionService creates a new routine exclusion service
func NewRoutineExclusionService(
	repo repositories.RoutineExclusionRepository,
	routines repositories.RoutineRepository,
	bus providers.EventBus,
) *RoutineExclusionService {
	return &RoutineExclusionService{repo: repo, routines: routines, bus: bus}
}

// Create validates and inserts a new routine exclusion
func (s *RoutineExclusionService) Create(ctx context.Context, exclusion *entities.RoutineExclusion, audit entities.AuditInfo) error {
	if err := s.validate(ctx, exclusion); err != nil {
		return err
	}

	exclusion.IsDeleted = false
	exclusion.CreatedDate, exclusion.ModifiedDate, exclusion.CreatedByID, exclusion.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, exclusion); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindRoutineExclusion, exclusion.ID, entities.EventActionCreated, audit, exclusion)
	return nil
}

// Get retrieves a routine exclusion by id
func (s *RoutineExclusionService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.RoutineExclusion, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a routine exclusion
func (s *RoutineExclusionService) Update(ctx context.Context, exclusion *entities.RoutineExclusion, audit entities.AuditInfo) error {
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

	publishEntityEvent(s.bus, kindRoutineExclusion, exclusion.ID, entities.EventActionUpdated, audit, exclusion)
	return nil
}

// Delete soft-deletes a routine exclusion
func (s *RoutineExclusionService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindRoutineExclusion, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves routine exclusions
func (s *RoutineExclusionService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.RoutineExclusion, error) {
	return s.repo.List(ctx, filter)
}

// ListForRoutine retrieves the live exclusions of one routine
func (s *RoutineExclusionService) ListForRoutine(ctx context.Context, routineID int64) ([]*entities.RoutineExclusion, error) {
	return s.repo.ListForRoutine(ctx, routineID)
}

func (s *RoutineExclusionService) validate(ctx context.Context, exclusion *entities.RoutineExclusion) error {
	if _, err := s.routines.GetByID(ctx, exclusion.RoutineID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("routine %d does not exist", exclusion.RoutineID))
		}
		return err
	}
	if exclusion.EndDate.Before(exclusion.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}
