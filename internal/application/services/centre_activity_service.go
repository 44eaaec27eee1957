package services

import (
	"context"
	"fmt"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

const kindCentreActivity = "centre_activity"

// CentreActivityService handles centre activity offerings and their
// scheduling constraints
type CentreActivityService struct {
	repo       repositories.CentreActivityRepository
	activities repositories.ActivityRepository
	bus        providers.EventBus
}

// NewCentreActivityService creates a new centre activity service
func NewCentreActivityService(
	repo repositories.CentreActivityRepository,
	activities repositories.ActivityRepository,
	bus providers.EventBus,
) *CentreActivityService {
	return &CentreActivityService{repo: repo, activities: activities, bus: bus}
}

// Create validates and inserts a new centre activity
func (s *CentreActivityService) Create(ctx context.Context, ca *entities.CentreActivity, audit entities.AuditInfo) error {
	if err := s.validate(ctx, ca); err != nil {
		return err
	}

	ca.IsDeleted = false
	ca.CreatedDate, ca.ModifiedDate, ca.CreatedByID, ca.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, ca); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindCentreActivity, ca.ID, entities.EventActionCreated, audit, ca)
	return nil
}

// Get retrieves a centre activity by id
func (s *CentreActivityService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivity, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a centre activity
func (s *CentreActivityService) Update(ctx context.Context, ca *entities.CentreActivity, audit entities.AuditInfo) error {
	if err := s.validate(ctx, ca); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, ca.ID, false)
	if err != nil {
		return err
	}

	ca.CreatedDate = existing.CreatedDate
	ca.CreatedByID = existing.CreatedByID
	ca.ModifiedDate = time.Now().UTC()
	ca.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, ca); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindCentreActivity, ca.ID, entities.EventActionUpdated, audit, ca)
	return nil
}

// Delete soft-deletes a centre activity
func (s *CentreActivityService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindCentreActivity, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves centre activities
func (s *CentreActivityService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return s.repo.List(ctx, filter)
}

// ListByActivity retrieves the offerings of one activity template
func (s *CentreActivityService) ListByActivity(ctx context.Context, activityID int64, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return s.repo.ListByActivity(ctx, activityID, filter)
}

func (s *CentreActivityService) validate(ctx context.Context, ca *entities.CentreActivity) error {
	if _, err := s.activities.GetByID(ctx, ca.ActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("activity %d does not exist", ca.ActivityID))
		}
		return err
	}

	if ca.MinDuration <= 0 {
		return apperrors.NewValidationError("min duration must be positive")
	}
	if ca.MaxDuration < ca.MinDuration {
		return apperrors.NewValidationError("max duration must not be below min duration")
	}
	if ca.MinPeopleReq < 0 {
		return apperrors.NewValidationError("min people required must not be negative")
	}
	if ca.IsGroup && ca.MinPeopleReq < 2 {
		return apperrors.NewValidationError("group activities require at least two people")
	}

	if _, err := ca.FixedSlotRefs(); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("invalid fixed time slots: %v", err))
	}
	if ca.IsFixed && !ca.HasFixedSlots() {
		observability.LoggerFromContext(ctx).Warn().
			Int64("activity_id", ca.ActivityID).
			Msg("Fixed centre activity saved without fixed time slots, will resolve as flexible")
	}
	return nil
}
