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

const kindCareCentre = "care_centre"

// CareCentreService handles care centre master data
type CareCentreService struct {
	repo repositories.CareCentreRepository
	bus  providers.EventBus
}

// NewCareCentreService creates a new care centre service
func NewCareCentreService(repo repositories.CareCentreRepository, bus providers.EventBus) *CareCentreService {
	return &CareCentreService{repo: repo, bus: bus}
}

// Create validates and inserts a new care centre
func (s *CareCentreService) Create(ctx context.Context, centre *entities.CareCentre, audit entities.AuditInfo) error {
	if err := validateCareCentre(centre); err != nil {
		return err
	}

	centre.IsDeleted = false
	centre.CreatedDate, centre.ModifiedDate, centre.CreatedByID, centre.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, centre); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindCareCentre, centre.ID, entities.EventActionCreated, audit, centre)
	return nil
}

// Get retrieves a care centre by id
func (s *CareCentreService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.CareCentre, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a care centre
func (s *CareCentreService) Update(ctx context.Context, centre *entities.CareCentre, audit entities.AuditInfo) error {
	if err := validateCareCentre(centre); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, centre.ID, false)
	if err != nil {
		return err
	}

	centre.CreatedDate = existing.CreatedDate
	centre.CreatedByID = existing.CreatedByID
	centre.ModifiedDate = time.Now().UTC()
	centre.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, centre); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindCareCentre, centre.ID, entities.EventActionUpdated, audit, centre)
	return nil
}

// Delete soft-deletes a care centre
func (s *CareCentreService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindCareCentre, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves care centres
func (s *CareCentreService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CareCentre, error) {
	return s.repo.List(ctx, filter)
}

func validateCareCentre(centre *entities.CareCentre) error {
	if strings.TrimSpace(centre.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if centre.NoOfDevicesAvail < 0 {
		return apperrors.NewValidationError("number of devices must not be negative")
	}
	return nil
}
