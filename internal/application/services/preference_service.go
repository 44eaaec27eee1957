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

const kindPreference = "centre_activity_preference"

// PreferenceService handles patient like/dislike preferences
type PreferenceService struct {
	repo             repositories.PreferenceRepository
	centreActivities repositories.CentreActivityRepository
	bus              providers.EventBus
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(
	repo repositories.PreferenceRepository,
	centreActivities repositories.CentreActivityRepository,
	bus providers.EventBus,
) *PreferenceService {
	return &PreferenceService{repo: repo, centreActivities: centreActivities, bus: bus}
}

// Create validates and inserts a new preference
func (s *PreferenceService) Create(ctx context.Context, pref *entities.CentreActivityPreference, audit entities.AuditInfo) error {
	if err := s.validate(ctx, pref); err != nil {
		return err
	}

	pref.IsDeleted = false
	pref.CreatedDate, pref.ModifiedDate, pref.CreatedByID, pref.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, pref); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindPreference, pref.ID, entities.EventActionCreated, audit, pref)
	return nil
}

// Get retrieves a preference by id
func (s *PreferenceService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityPreference, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a preference
func (s *PreferenceService) Update(ctx context.Context, pref *entities.CentreActivityPreference, audit entities.AuditInfo) error {
	if err := s.validate(ctx, pref); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, pref.ID, false)
	if err != nil {
		return err
	}

	pref.CreatedDate = existing.CreatedDate
	pref.CreatedByID = existing.CreatedByID
	pref.ModifiedDate = time.Now().UTC()
	pref.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, pref); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindPreference, pref.ID, entities.EventActionUpdated, audit, pref)
	return nil
}

// Delete soft-deletes a preference
func (s *PreferenceService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindPreference, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves preferences
func (s *PreferenceService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityPreference, error) {
	return s.repo.List(ctx, filter)
}

func (s *PreferenceService) validate(ctx context.Context, pref *entities.CentreActivityPreference) error {
	if strings.TrimSpace(pref.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if !entities.ValidRating(pref.IsLike) {
		return apperrors.NewValidationError("is_like must be -1, 0 or 1")
	}
	if _, err := s.centreActivities.GetByID(ctx, pref.CentreActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("centre activity %d does not exist", pref.CentreActivityID))
		}
		return err
	}
	return nil
}
