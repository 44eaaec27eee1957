package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

const kindRoutine = "routine"

// RoutineService handles patient-level weekly recurring schedules. Besides
// CRUD it materializes a routine's concrete occurrences over a date range,
// with suspensions (routine exclusions) punched out.
type RoutineService struct {
	repo       repositories.RoutineRepository
	activities repositories.ActivityRepository
	exclusions repositories.RoutineExclusionRepository
	bus        providers.EventBus
}

// NewRoutineService creates a new routine service
func NewRoutineService(
	repo repositories.RoutineRepository,
	activities repositories.ActivityRepository,
	exclusions repositories.RoutineExclusionRepository,
	bus providers.EventBus,
) *RoutineService {
	return &RoutineService{repo: repo, activities: activities, exclusions: exclusions, bus: bus}
}

// Create validates and inserts a new routine
func (s *RoutineService) Create(ctx context.Context, routine *entities.Routine, audit entities.AuditInfo) error {
	if err := s.validate(ctx, routine); err != nil {
		return err
	}

	routine.IsDeleted = false
	routine.CreatedDate, routine.ModifiedDate, routine.CreatedByID, routine.ModifiedByID = audit.StampCreate(time.Now().UTC())

	if err := s.repo.Create(ctx, routine); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindRoutine, routine.ID, entities.EventActionCreated, audit, routine)
	return nil
}

// Get retrieves a routine by id
func (s *RoutineService) Get(ctx context.Context, id int64, includeDeleted bool) (*entities.Routine, error) {
	return s.repo.GetByID(ctx, id, includeDeleted)
}

// Update validates and rewrites a routine
func (s *RoutineService) Update(ctx context.Context, routine *entities.Routine, audit entities.AuditInfo) error {
	if err := s.validate(ctx, routine); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, routine.ID, false)
	if err != nil {
		return err
	}

	routine.CreatedDate = existing.CreatedDate
	routine.CreatedByID = existing.CreatedByID
	routine.ModifiedDate = time.Now().UTC()
	routine.ModifiedByID = audit.ActorID

	if err := s.repo.Update(ctx, routine); err != nil {
		return err
	}

	publishEntityEvent(s.bus, kindRoutine, routine.ID, entities.EventActionUpdated, audit, routine)
	return nil
}

// Delete soft-deletes a routine
func (s *RoutineService) Delete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := s.repo.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	publishEntityEvent(s.bus, kindRoutine, id, entities.EventActionDeleted, audit, nil)
	return nil
}

// List retrieves routines
func (s *RoutineService) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Routine, error) {
	return s.repo.List(ctx, filter)
}

// ListByPatient retrieves the routines of one patient
func (s *RoutineService) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Routine, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, apperrors.NewValidationError("patient id is required")
	}
	return s.repo.ListByPatient(ctx, patientID, filter)
}

// Occurrences materializes the routine's weekly recurrence over [from, to):
// one occurrence per matching day inside the routine's date range whose start
// falls within the range and is not covered by a live routine exclusion.
func (s *RoutineService) Occurrences(ctx context.Context, routineID int64, from, to time.Time) ([]entities.RoutineOccurrence, error) {
	ctx, span := observability.StartSpan(ctx, "RoutineService.Occurrences")
	defer span.End()

	if !from.Before(to) {
		return nil, apperrors.NewValidationError("range start must be before range end")
	}

	routine, err := s.repo.GetByID(ctx, routineID, false)
	if err != nil {
		return nil, err
	}

	exclusions, err := s.exclusions.ListForRoutine(ctx, routine.ID)
	if err != nil {
		return nil, err
	}

	occurrences := []entities.RoutineOccurrence{}
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		if !routine.ActiveOn(day) {
			continue
		}

		start := day.Add(time.Duration(routine.StartMinutes) * time.Minute)
		if start.Before(from) || !start.Before(to) {
			continue
		}
		if suspendedAt(exclusions, start) {
			continue
		}

		occurrences = append(occurrences, entities.RoutineOccurrence{
			RoutineID:  routine.ID,
			ActivityID: routine.ActivityID,
			PatientID:  routine.PatientID,
			Start:      start,
			End:        day.Add(time.Duration(routine.EndMinutes) * time.Minute),
		})
	}
	return occurrences, nil
}

func suspendedAt(exclusions []*entities.RoutineExclusion, t time.Time) bool {
	for _, e := range exclusions {
		if e.Covers(t) {
			return true
		}
	}
	return false
}

func (s *RoutineService) validate(ctx context.Context, routine *entities.Routine) error {
	if strings.TrimSpace(routine.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(routine.PatientID) == "" {
		return apperrors.NewValidationError("patient id is required")
	}
	if _, err := s.activities.GetByID(ctx, routine.ActivityID, false); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError(fmt.Sprintf("activity %d does not exist", routine.ActivityID))
		}
		return err
	}
	if routine.DayOfWeek < 0 || routine.DayOfWeek > 6 {
		return apperrors.NewValidationError("day of week must be between 0 (Monday) and 6 (Sunday)")
	}
	if routine.StartMinutes < 0 || routine.EndMinutes > 24*60 || routine.StartMinutes >= routine.EndMinutes {
		return apperrors.NewValidationError("start and end minutes must describe a window within the day")
	}
	if routine.EndDate.Before(routine.StartDate) {
		return apperrors.NewValidationError("end date must not be before start date")
	}
	return nil
}
