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

const kindAdhoc = "adhoc"

// AdhocService handles time-bounded activity substitutions. Requests start
// pending and are decided exactly once; the decision is guarded by the
// modified date the caller last saw so concurrent approvals cannot both win.
type AdhocService struct {
	repo             repositories.AdhocRepository
	centreActivities repositories.CentreActivityRepository
	bus              providers.EventBus
}

// NewAdhocService creates a new adhoc service
func NewAdhocService(
	repo repositories.AdhocRepository,
	centreActivities repositories.CentreActivityRepository,
	bus providers.EventBus,
) *AdhocService {
	return &AdhocService{repo: repo, centreActivities: centreActivities, bus: bus}
}

// Create validates and inserts a new substitution request in pending state
func (s *AdhocService) Create(ctx context.Context, adhoc *entities.Adhoc, audit entities.AuditInfo) error {
	if err := s.validate(ctx, adhoc); err != nil {
		return err
	}

	adhoc.IsDeleted = false
	adhoc.Status = entities.AdhocStatusPending
	adhoc.CreatedDate, adhoc.ModifiedDate, adhoc.CreatedByID, adhoc.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, adhoc); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindAdhoc, adhoc.ID, entities.EventActionCreated, audit, adhoc)
	return nil
}

// Get retrieves a substitution by id
func (s *AdhocService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.Adhoc, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a pending substitution. Decided rows are
// immutable apart from soft deletion.
func (s *AdhocService) Update(ctx context.Context, adhoc *entities.Adhoc, audit entities.AuditInfo) error {
	if err := s.validate(ctx, adhoc); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, adhoc.ID, false)
	if err != nil {
		return err
	}
	if existing.Status != entities.AdhocStatusPending {
		return apperrors.NewConflictError(fmt.Sprintf("adhoc %d is already %s", adhoc.ID, existing.Status))
	}

	adhoc.Status = existing.Status
	adhoc.CreatedDate = existing.CreatedDate
	adhoc.CreatedByID = existing.CreatedByID
	adhoc.ModifiedDate = time.Now().UTC()
	adhoc.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, adhoc); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindAdhoc, adhoc.ID, entities.EventActionUpdated, audit, adhoc)
	return nil
}

// Delete soft-deletes a substitution
func (s *AdhocService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindAdhoc, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves substitutions
func (s *AdhocService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	return s.repo.List(ctx, filter)
}

// ListByPatient retrieves the substitutions of one patient
func (s *AdhocService) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	return s.repo.ListByPatient(ctx, patientID, filter)
}

// Approve moves a pending substitution to approved. expectedModified is the
// modified date the caller last read; a mismatch means another writer decided
// first and surfaces as a stale-state error.
func (s *AdhocService) Approve(ctx context.Context, id int64, expectedModified time.Time, audit entities.AuditInfo) (*entities.Adhoc, error) {
	return s.transition(ctx, id, entities.AdhocStatusApproved, expectedModified, audit)
}

// Reject moves a pending substitution to rejected.
func (s *AdhocService) Reject(ctx context.Context, id int64, expectedModified time.Time, audit entities.AuditInfo) (*entities.Adhoc, error) {
	return s.transition(ctx, id, entities.AdhocStatusRejected, expectedModified, audit)
}

func (s *AdhocService) transition(ctx context.Context, id int64, target entities.AdhocStatus, expectedModified time.Time, audit entities.AuditInfo) (*entities.Adhoc, error) {
	existing, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if !existing.CanTransitionTo(target) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("adhoc %d cannot move from %s to %s", id, existing.Status, target))
	}

	if err := s.repo.TransitionStatus(ctx, id, target, expectedModified, audit); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	publishEntityEvent(s.bus, kindAdhoc, id, entities.EventActionUpdated, audit, updated)
	return updated, nil
}

func (s *AdhocService) validate(ctx context.Context, adhoc *entities.Adhoc) error {
	if strings.TrimSpace(adhoc.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if adhoc.OldCentreActivityID == adhoc.NewCentreActivityID {
		return apperrors.NewValidationError("substitution must reference two different centre activities")
	}
	if !adhoc.StartTime.Before(adhoc.EndTime) {
		return apperrors.NewValidationError("start time must be before end time")
	}

	for _, id := range []int64{adhoc.OldCentreActivityID, adhoc.NewCentreActivityID} {
		ca, err := s.centreActivities.GetByID(ctx, id, false)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.NewValidationError(fmt.Sprintf("centre activity %d does not exist", id))
			}
			return err
		}
		if !ca.IsSchedulable() {
			return apperrors.NewValidationError(fmt.Sprintf("centre activity %d is inactive", id))
		}
	}
	return nil
}
