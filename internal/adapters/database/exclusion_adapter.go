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

var exclusionColumns = []interface{}{
	"id", "centre_activity_id", "patient_id", "is_deleted", "exclusion_remarks",
	"start_date", "end_date", "created_date", "modified_date", "created_by_id", "modified_by_id",
}

// ExclusionAdapter implements ExclusionRepository
type ExclusionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ExclusionRepository = (*ExclusionAdapter)(nil)

// NewExclusionAdapter creates a new exclusion adapter
func NewExclusionAdapter(client *postgres.Client) *ExclusionAdapter {
	return &ExclusionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new exclusion and fills its generated id
func (a *ExclusionAdapter) Create(ctx context.Context, exclusion *entities.CentreActivityExclusion) error {
	record := goqu.Record{
		"centre_activity_id": exclusion.CentreActivityID,
		"patient_id":         exclusion.PatientID,
		"is_deleted":         exclusion.IsDeleted,
		"exclusion_remarks":  sql.NullString{String: exclusion.ExclusionRemarks, Valid: exclusion.ExclusionRemarks != ""},
		"start_date":         exclusion.StartDate,
		"end_date":           exclusion.EndDate,
		"created_date":       exclusion.CreatedDate,
		"modified_date":      exclusion.ModifiedDate,
		"created_by_id":      exclusion.CreatedByID,
		"modified_by_id":     exclusion.ModifiedByID,
	}

	query, args, err := a.db.Insert("centre_activity_exclusion").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&exclusion.ID); err != nil {
		return apperrors.NewInternalError("failed to create exclusion", err)
	}
	return nil
}

// GetByID retrieves an exclusion by id
func (a *ExclusionAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityExclusion, error) {
	ds := a.db.Select(exclusionColumns...).From("centre_activity_exclusion").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	exclusion, err := scanExclusion(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("exclusion with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan exclusion", err)
	}
	return exclusion, nil
}

// Update rewrites the mutable columns of an exclusion
func (a *ExclusionAdapter) Update(ctx context.Context, exclusion *entities.CentreActivityExclusion) error {
	record := goqu.Record{
		"centre_activity_id": exclusion.CentreActivityID,
		"patient_id":         exclusion.PatientID,
		"exclusion_remarks":  sql.NullString{String: exclusion.ExclusionRemarks, Valid: exclusion.ExclusionRemarks != ""},
		"start_date":         exclusion.StartDate,
		"end_date":           exclusion.EndDate,
		"modified_date":      exclusion.ModifiedDate,
		"modified_by_id":     exclusion.ModifiedByID,
	}

	query, args, err := a.db.Update("centre_activity_exclusion").
		Set(record).
		Where(goqu.Ex{"id": exclusion.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("exclusion with id %d not found", exclusion.ID))
}

// SoftDelete marks an exclusion deleted
func (a *ExclusionAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "centre_activity_exclusion", id, audit)
}

// List retrieves exclusions ordered by id
func (a *ExclusionAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityExclusion, error) {
	filter = filter.Normalize()

	ds := a.db.Select(exclusionColumns...).From("centre_activity_exclusion")
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
// centre activity, ordered by start date
func (a *ExclusionAdapter) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityExclusion, error) {
	query, args, err := a.db.Select(exclusionColumns...).
		From("centre_activity_exclusion").
		Where(goqu.Ex{
			"patient_id":         patientID,
			"centre_activity_id": centreActivityID,
			"is_deleted":         false,
		}).
		Order(goqu.I("start_date").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *ExclusionAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.CentreActivityExclusion, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list exclusions", err)
	}
	defer rows.Close()

	var exclusions []*entities.CentreActivityExclusion
	for rows.Next() {
		exclusion, err := scanExclusion(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan exclusion", err)
		}
		exclusions = append(exclusions, exclusion)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate exclusions", err)
	}
	return exclusions, nil
}

func scanExclusion(row rowScanner) (*entities.CentreActivityExclusion, error) {
	exclusion := &entities.CentreActivityExclusion{}
	var remarks, createdBy, modifiedBy sql.NullString
	var endDate sql.NullTime

	err := row.Scan(
		&exclusion.ID,
		&exclusion.CentreActivityID,
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
