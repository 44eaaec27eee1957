package repositories

import (
	"context"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// RoutineRepository defines the interface for patient routine data
// operations.
type RoutineRepository interface {
	Create(ctx context.Context, routine *entities.Routine) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Routine, error)
	Update(ctx context.Context, routine *entities.Routine) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.Routine, error)

	// ListByPatient retrieves the routines of one patient.
	ListByPatient(ctx context.Context, patientID string, filter ListFilter) ([]*entities.Routine, error)
}

// RoutineExclusionRepository defines the interface for routine suspension
// data operations.
type RoutineExclusionRepository interface {
	Create(ctx context.Context, exclusion *entities.RoutineExclusion) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.RoutineExclusion, error)
	Update(ctx context.Context, exclusion *entities.RoutineExclusion) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.RoutineExclusion, error)

	// ListForRoutine retrieves the live exclusions of one routine, ordered by
	// start date.
	ListForRoutine(ctx context.Context, routineID int64) ([]*entities.RoutineExclusion, error)
}

// ActivityExclusionRepository defines the interface for activity-level
// patient exclusion data operations.
type ActivityExclusionRepository interface {
	Create(ctx context.Context, exclusion *entities.ActivityExclusion) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.ActivityExclusion, error)
	Update(ctx context.Context, exclusion *entities.ActivityExclusion) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.ActivityExclusion, error)

	// ListForPatientActivity retrieves the live exclusions of one patient on
	// one activity template, ordered by start date.
	ListForPatientActivity(ctx context.Context, patientID string, activityID int64) ([]*entities.ActivityExclusion, error)
}
