package repositories

import (
	"context"

	"github.com/carecentral/activity-service/internal/domain/entities"
)

// ExclusionRepository defines the interface for patient exclusion data
// operations.
type ExclusionRepository interface {
	Create(ctx context.Context, exclusion *entities.CentreActivityExclusion) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityExclusion, error)
	Update(ctx context.Context, exclusion *entities.CentreActivityExclusion) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.CentreActivityExclusion, error)

	// ListForPatientActivity retrieves the live exclusions of one patient on
	// one centre activity, ordered by start date.
	ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityExclusion, error)
}

// RecommendationRepository defines the interface for doctor recommendation
// data operations. The store enforces uniqueness of (centre activity,
// patient, doctor) among live rows.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *entities.CentreActivityRecommendation) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityRecommendation, error)
	Update(ctx context.Context, rec *entities.CentreActivityRecommendation) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.CentreActivityRecommendation, error)

	// ListForPatientActivity retrieves the live recommendations of one
	// patient on one centre activity, ordered by created date descending then
	// id descending so aggregation is deterministic.
	ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityRecommendation, error)
}

// PreferenceRepository defines the interface for patient preference data
// operations.
type PreferenceRepository interface {
	Create(ctx context.Context, pref *entities.CentreActivityPreference) error
	GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityPreference, error)
	Update(ctx context.Context, pref *entities.CentreActivityPreference) error
	SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error
	List(ctx context.Context, filter ListFilter) ([]*entities.CentreActivityPreference, error)

	// ListForPatientActivity retrieves the live preferences of one patient on
	// one centre activity, ordered by created date descending then id
	// descending.
	ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityPreference, error)
}
