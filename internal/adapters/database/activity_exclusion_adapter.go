package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

var activityExclusionColumns = []interface{}{
	"id", "activity_id", "patient_id", "is_deleted", "exclusion_remarks",
	"start_date", "end_date", "created_date", "modified_date", "created_by_id", "modified_by_id",
}

// ActivityExclusionAdapter implements ActivityExclusionRepository
type ActivityExclusionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ActivityExclusionRepository = (*ActivityExclusionAdapter)(nil)

// NewActivityExclusionAdapter creates a new activity exclusion adapter
func NewActivityExclusionAdapter(client *postgres.Client) *ActivityExclusionAdapter {
	return &ActivityExclusionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new activity exclusion and fills its generated id
func (a *ActivityExclusionAdapter) Create(ctx context.Context, exclusion *entities.ActivityExclusion) error {
	record := goqu.Record{
		"activity_id":       exclusion.ActivityID,
		"patient_id":        exclusion.PatientID,
		"is_deleted":        exclusion.IsDeleted,
		"exclusion_remarks": sql.NullString{String: exclusion.ExclusionRemarks, Valid: exclusion.ExclusionRemarks != ""},
		"start_date":        exclusion.StartDate,
		"end_date":          exclusion.EndDate,
		"created_date":      exclusion.CreatedDate,
		"modified_date":     exclusion.ModifiedDate,
		"created_by_id":     exclusion.CreatedByID,
		"modified_by_id":    exclusion.ModifiedByID,
	}

	query, args, err := a.db.Insert("activity_exclusion").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&exclusion.ID); err != nil {
		return apperrors.NewInternalError("failed to create activity exclusion", err)
	}
	return nil
}

// GetByID retrieves an activity exclusion by id
func (a *ActivityExclusionAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.ActivityExclusion, error) {
	ds := a.db.Select(activityExclusionColumns...).From("activity_exclusion").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	exclusion, err := scanActivityExclusion(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("activity exclusion with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan activity exclusion", err)
	}
	return exclusion, nil
}

// Update rewrites the mutable columns of an activity exclusion
func (a *ActivityExclusionAdapter) Update(ctx context.Context, exclusion *entities.ActivityExclusion) error {
	record := goqu.Record{
		"activity_id":       exclusion.ActivityID,
		"patient_id":        exclusion.PatientID,
		"exclusion_remarks": sql.NullString{String: exclusion.ExclusionRemarks, Valid: exclusion.ExclusionRemarks != ""},
		"start_date":        exclusion.StartDate,
		"end_date":          exclusion.EndDate,
		"modified_date":     exclusion.ModifiedDate,
		"modified_by_id":    exclusion.ModifiedByID,
	}

	query, args, err := a.db.Update("activity_exclusion").
		Set(record).
		Where(goqu.Ex{"id": exclusion.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("activity exclusion with id %d not found", exclusion.ID))
}

// SoftDelete marks an activity exclusion deleted
func (a *ActivityExclusionAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "activity_exclusion", id, audit)
}

// List retrieves activity exclusions ordered by id
func (a *ActivityExclusionAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.ActivityExclusion, error) {
	filter = filter.Normalize()

	ds := a.db.Select(activityExclusionColumns...).From("activity_exclusion")
	if !filter.IncludeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.
		Order(goqu.I("id").Asc()).
		Limit(uint(filter.Limit)).
		Offset(uint(filter.Offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}
	return a.queryMany(ctx, query, args)
}

// ListForPatientActivity retrieves the live exclusions of one patient on one
// activity template, ordered by start date
func (a *ActivityExclusionAdapter) ListForPatientActivity(ctx context.Context, patientID string, activityID int64) ([]*entities.ActivityExclusion, error) {
	query, args, err := a.db.Select(activityExclusionColumns...).
		From("activity_exclusion").
		Where(goqu.Ex{
			"patient_id":  patientID,
			"activity_id": activityID,
			"is_deleted":  false,
		}).
		Order(goqu.I("start_date").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *ActivityExclusionAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.ActivityExclusion, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activity exclusions", err)
	}
	defer rows.Close()

	var exclusions []*entities.ActivityExclusion
	for rows.Next() {
		exclusion, err := scanActivityExclusion(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan activity exclusion", err)
		}
		exclusions = append(exclusions, exclusion)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate activity exclusions", err)
	}
	return exclusions, nil
}

func scanActivityExclusion(row rowScanner) (*entities.ActivityExclusion, error) {
	exclusion := &entities.ActivityExclusion{}
	var remarks, createdBy, modifiedBy sql.NullString
	var endDate sql.NullTime

	err := row.Scan(
		&exclusion.ID,
		&exclusion.ActivityID,
		&exclusion.PatientID,
		&exclusion.IsDeleted,
		&remarks,
		&exclusion.StartDate,
		&endDate,
		&exclusion.CreatedDate,
		&exclusion.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	exclusion.ExclusionRemarks = remarks.String
	exclusion.CreatedByID = createdBy.String
	exclusion.ModifiedByID = modifiedBy.String
	if endDate.Valid {
		exclusion.EndDate = &endDate.Time
	}
	return exclusion, nil
}
