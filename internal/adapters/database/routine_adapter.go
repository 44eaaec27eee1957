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

var routineColumns = []interface{}{
	"id", "name", "activity_id", "patient_id", "day_of_week", "start_minutes", "end_minutes",
	"start_date", "end_date", "is_deleted", "created_date", "modified_date", "created_by_id", "modified_by_id",
}

// RoutineAdapter implements RoutineRepository
type RoutineAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.RoutineRepository = (*RoutineAdapter)(nil)

// NewRoutineAdapter creates a new routine adapter
func NewRoutineAdapter(client *postgres.Client) *RoutineAdapter {
	return &RoutineAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new routine and fills its generated id
func (a *RoutineAdapter) Create(ctx context.Context, routine *entities.Routine) error {
	record := goqu.Record{
		"name":           routine.Name,
		"activity_id":    routine.ActivityID,
		"patient_id":     routine.PatientID,
		"day_of_week":    routine.DayOfWeek,
		"start_minutes":  routine.StartMinutes,
		"end_minutes":    routine.EndMinutes,
		"start_date":     routine.StartDate,
		"end_date":       routine.EndDate,
		"is_deleted":     routine.IsDeleted,
		"created_date":   routine.CreatedDate,
		"modified_date":  routine.ModifiedDate,
		"created_by_id":  routine.CreatedByID,
		"modified_by_id": routine.ModifiedByID,
	}

	query, args, err := a.db.Insert("routine").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&routine.ID); err != nil {
		return apperrors.NewInternalError("failed to create routine", err)
	}
	return nil
}

// GetByID retrieves a routine by id
func (a *RoutineAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Routine, error) {
	ds := a.db.Select(routineColumns...).From("routine").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	routine, err := scanRoutine(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("routine with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan routine", err)
	}
	return routine, nil
}

// Update rewrites the mutable columns of a routine
func (a *RoutineAdapter) Update(ctx context.Context, routine *entities.Routine) error {
	record := goqu.Record{
		"name":           routine.Name,
		"activity_id":    routine.ActivityID,
		"patient_id":     routine.PatientID,
		"day_of_week":    routine.DayOfWeek,
		"start_minutes":  routine.StartMinutes,
		"end_minutes":    routine.EndMinutes,
		"start_date":     routine.StartDate,
		"end_date":       routine.EndDate,
		"modified_date":  routine.ModifiedDate,
		"modified_by_id": routine.ModifiedByID,
	}

	query, args, err := a.db.Update("routine").
		Set(record).
		Where(goqu.Ex{"id": routine.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("routine with id %d not found", routine.ID))
}

// SoftDelete marks a routine deleted
func (a *RoutineAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "routine", id, audit)
}

// List retrieves routines ordered by id
func (a *RoutineAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Routine, error) {
	filter = filter.Normalize()

	ds := a.db.Select(routineColumns...).From("routine")
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

// ListByPatient retrieves the routines of one patient
func (a *RoutineAdapter) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Routine, error) {
	filter = filter.Normalize()

	ds := a.db.Select(routineColumns...).From("routine").Where(goqu.Ex{"patient_id": patientID})
	if !filter.IncludeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.
		Order(goqu.I("id").Asc()).
		Limit(uint(filter.Limit)).
		Offset(uint(filter.Offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *RoutineAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.Routine, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list routines", err)
	}
	defer rows.Close()

	var routines []*entities.Routine
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan routine", err)
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate routines", err)
	}
	return routines, nil
}

func scanRoutine(row rowScanner) (*entities.Routine, error) {
	routine := &entities.Routine{}
	var createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&routine.ID,
		&routine.Name,
		&routine.ActivityID,
		&routine.PatientID,
		&routine.DayOfWeek,
		&routine.StartMinutes,
		&routine.EndMinutes,
		&routine.StartDate,
		&routine.EndDate,
		&routine.IsDeleted,
		&routine.CreatedDate,
		&routine.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	routine.CreatedByID = createdBy.String
	routine.ModifiedByID = modifiedBy.String
	return routine, nil
}
