package repositories

import (
	"context"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// AdhocRepository defines the interface for substitution data operations.
type AdhocRepository interface {
	Create(ctx context.Context, adhoc *entities.Adhoc) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Adhoc, error)
	Update(ctx context.Context, adhoc *entities.Adhoc) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.Adhoc, error)

	// ListByPatient retrieves the live substitutions of one patient.
	ListByPatient(ctx context.Context, patientID string, filter ListFilter) ([]*entities.Adhoc, error)

	// FindApproved retrieves the approved live substitution redirecting the
	// given centre activity for the patient at the given time, or nil when
	// none applies.
	FindApproved(ctx context.Context, patientID string, oldCentreActivityID int64, at time.Time) (*entities.Adhoc, error)

	// TransitionStatus moves a pending row to the target status with an
	// optimistic concurrency check on the row's modified date. When the check
	// fails because another writer got there first, a stale-state error is
	// returned so the caller can refetch and retry.
	TransitionStatus(ctx context.Context, id int64, target entities.AdhocStatus, expectedModified time.Time, audit entities.AuditInfo) error
}
