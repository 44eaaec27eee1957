package repositories

import (
	"context"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// ActivityRepository defines the interface for activity template data
// operations. Deletion is always a soft delete.
type ActivityRepository interface {
	// Create inserts a new activity and fills its generated id.
	Create(ctx context.Context, activity *entities.Activity) error

	// GetByID retrieves an activity by id. Soft-deleted rows are returned
	// only when includeDeleted is set.
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Activity, error)

	// Update rewrites the mutable columns of an activity.
	Update(ctx context.Context, activity *entities.Activity) error

	// SoftDelete marks an activity deleted, recording the acting user.
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error

	// List retrieves activities ordered by id.
	List(ctx context.Context, filter ListFilter) ([]*entities.Activity, error)
}

// CareCentreRepository defines the interface for care centre master data.
type CareCentreRepository interface {
	Create(ctx context.Context, centre *entities.CareCentre) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CareCentre, error)
	Update(ctx context.Context, centre *entities.CareCentre) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.CareCentre, error)
}
