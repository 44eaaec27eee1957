package repositories

import (
	"context"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// CentreActivityRepository defines the interface for centre activity data
// operations.
type CentreActivityRepository interface {
	// Create inserts a new centre activity and fills its generated id.
	Create(ctx context.Context, ca *entities.CentreActivity) error

	// GetByID retrieves a centre activity by id.
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivity, error)

	// Update rewrites the mutable columns of a centre activity.
	Update(ctx context.Context, ca *entities.CentreActivity) error

	// SoftDelete marks a centre activity deleted.
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error

	// List retrieves centre activities ordered by id.
	List(ctx context.Context, filter ListFilter) ([]*entities.CentreActivity, error)

	// ListByActivity retrieves the live offerings of one activity template.
	ListByActivity(ctx context.Context, activityID int64, filter ListFilter) ([]*entities.CentreActivity, error)
}

// AvailabilityRepository defines the interface for explicit availability
// window operations.
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *entities.CentreActivityAvailability) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityAvailability, error)
	Update(ctx context.Context, availability *entities.CentreActivityAvailability) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.CentreActivityAvailability, error)

	// ListOverlapping retrieves the live windows of a centre activity that
	// intersect [from, to), ordered by start time.
	ListOverlapping(ctx context.Context, centreActivityID int64, from, to time.Time) ([]*entities.CentreActivityAvailability, error)
}
