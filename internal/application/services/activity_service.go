package services

import (
	"context"
	"strings"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

const kindActivity = "activity"

// ActivityService handles activity template lifecycle logic
type ActivityService struct {
	repo repositories.ActivityRepository
	bus  providers.EventBus
}

// NewActivityService creates a new activity service
func NewActivityService(repo repositories.ActivityRepository, bus providers.EventBus) *ActivityService {
	return &ActivityService{repo: repo, bus: bus}
}

// Create validates and inserts a new activity template
func (s *ActivityService) Create(ctx context.Context, activity *entities.Activity, audit entities.AuditInfo) error {
	if err := validateActivity(activity); err != nil {
		return err
	}

	activity.IsDeleted = false
	activity.CreatedDate, activity.ModifiedDate, activity.CreatedByID, activity.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, activity); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindActivity, activity.ID, entities.EventActionCreated, audit, activity)
	return nil
}

// Get retrieves an activity by id
func (s *ActivityService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.Activity, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites an activity
func (s *ActivityService) Update(ctx context.Context, activity *entities.Activity, audit entities.AuditInfo) error {
	if err := validateActivity(activity); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, activity.ID, false)
	if err != nil {
		return err
	}

	activity.CreatedDate = existing.CreatedDate
	activity.CreatedByID = existing.CreatedByID
	activity.ModifiedDate = time.Now().UTC()
	activity.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, activity); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindActivity, activity.ID, entities.EventActionUpdated, audit, activity)
	return nil
}

// Delete soft-deletes an activity
func (s *ActivityService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindActivity, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves activities
func (s *ActivityService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Activity, error) {
	return s.repo.List(ctx, filter)
}

func validateActivity(activity *entities.Activity) error {
	if strings.TrimSpace(activity.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if activity.EndDate != nil && activity.EndDate.Before(activity.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}
