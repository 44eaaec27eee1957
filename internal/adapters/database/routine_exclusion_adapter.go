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

var routineExclusionColumns = []interface{}{
	"id", "routine_id", "start_date", "end_date", "remarks", "is_deleted",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// RoutineExclusionAdapter implements RoutineExclusionRepository
type RoutineExclusionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.RoutineExclusionRepository = (*RoutineExclusionAdapter)(nil)

// NewRoutineExclusionAdapter creates a new routine exclusion adapter
func NewRoutineExclusionAdapter(client *postgres.Client) *RoutineExclusionAdapter {
	return &RoutineExclusionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new routine exclusion and fills its generated id
func (a *RoutineExclusionAdapter) Create(ctx context.Context, exclusion *entities.RoutineExclusion) error {
	record := goqu.Record{
		"routine_id":     exclusion.RoutineID,
		"start_date":     exclusion.StartDate,
		"end_date":       exclusion.EndDate,
		"remarks":        sql.NullString{String: exclusion.Remarks, Valid: exclusion.Remarks != ""},
		"is_deleted":     exclusion.IsDeleted,
		"created_date":   exclusion.CreatedDate,
		"modified_date":  exclusion.ModifiedDate,
		"created_by_id":  exclusion.CreatedByID,
		"modified_by_id": exclusion.ModifiedByID,
	}

	query, args, err := a.db.Insert("routine_exclusion").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&exclusion.ID); err != nil {
		return apperrors.NewInternalError("failed to create routine exclusion", err)
	}
	return nil
}

// GetByID retrieves a routine exclusion by id
func (a *RoutineExclusionAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.RoutineExclusion, error) {
	ds := a.db.Select(routineExclusionColumns...).From("routine_exclusion").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	exclusion, err := scanRoutineExclusion(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("routine exclusion with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan routine exclusion", err)
	}
	return exclusion, nil
}

// Update rewrites the mutable columns of a routine exclusion
func (a *RoutineExclusionAdapter) Update(ctx context.Context, exclusion *entities.RoutineExclusion) error {
	record := goqu.Record{
		"routine_id":     exclusion.RoutineID,
		"start_date":     exclusion.StartDate,
		"end_date":       exclusion.EndDate,
		"remarks":        sql.NullString{String: exclusion.Remarks, Valid: exclusion.Remarks != ""},
		"modified_date":  exclusion.ModifiedDate,
		"modified_by_id": exclusion.ModifiedByID,
	}

	query, args, err := a.db.Update("routine_exclusion").
		Set(record).
		Where(goqu.Ex{"id": exclusion.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("routine exclusion with id %d not found", exclusion.ID))
}

// SoftDelete marks a routine exclusion deleted
func (a *RoutineExclusionAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "routine_exclusion", id, audit)
}

// List retrieves routine exclusions ordered by id
func (a *RoutineExclusionAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.RoutineExclusion, error) {
	filter = filter.Normalize()

	ds := a.db.Select(routineExclusionColumns...).From("routine_exclusion")
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

// ListForRoutine retrieves the live exclusions of one routine, ordered by
// start date
func (a *RoutineExclusionAdapter) ListForRoutine(ctx context.Context, routineID int64) ([]*entities.RoutineExclusion, error) {
	query, args, err := a.db.Select(routineExclusionColumns...).
		From("routine_exclusion").
		Where(goqu.Ex{"routine_id": routineID, "is_deleted": false}).
		Order(goqu.I("start_date").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *RoutineExclusionAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.RoutineExclusion, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list routine exclusions", err)
	}
	defer rows.Close()

	var exclusions []*entities.RoutineExclusion
	for rows.Next() {
		exclusion, err := scanRoutineExclusion(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan routine exclusion", err)
		}
		exclusions = append(exclusions, exclusion)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate routine exclusions", err)
	}
	return exclusions, nil
}

func scanRoutineExclusion(row rowScanner) (*entities.RoutineExclusion, error) {
	exclusion := &entities.RoutineExclusion{}
	var remarks, createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&exclusion.ID,
		&exclusion.RoutineID,
		&exclusion.StartDate,
		&exclusion.EndDate,
		&remarks,
		&exclusion.IsDeleted,
		&exclusion.CreatedDate,
		&exclusion.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	exclusion.Remarks = remarks.String
	exclusion.CreatedByID = createdBy.String
	exclusion.ModifiedByID = modifiedBy.String
	return exclusion, nil
}
