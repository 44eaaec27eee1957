package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

var activityColumns = []interface{}{
	"id", "active", "is_deleted", "title", "description", "start_date", "end_date",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// ActivityAdapter implements ActivityRepository
type ActivityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ActivityRepository = (*ActivityAdapter)(nil)

// NewActivityAdapter creates a new activity adapter
func NewActivityAdapter(client *postgres.Client) *ActivityAdapter {
	return &ActivityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new activity and fills its generated id
func (a *ActivityAdapter) Create(ctx context.Context, activity *entities.Activity) error {
	record := goqu.Record{
		"active":         activity.Active,
		"is_deleted":     activity.IsDeleted,
		"title":          activity.Title,
		"description":    sql.NullString{String: activity.Description, Valid: activity.Description != ""},
		"start_date":     activity.StartDate,
		"end_date":       activity.EndDate,
		"created_date":   activity.CreatedDate,
		"modified_date":  activity.ModifiedDate,
		"created_by_id":  activity.CreatedByID,
		"modified_by_id": activity.ModifiedByID,
	}

	query, args, err := a.db.Insert("activity").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&activity.ID); err != nil {
		return apperrors.NewInternalError("failed to create activity", err)
	}
	return nil
}

// GetByID retrieves an activity by id
func (a *ActivityAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Activity, error) {
	ds := a.db.Select(activityColumns...).From("activity").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	activity, err := scanActivity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("activity with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan activity", err)
	}
	return activity, nil
}

// Update rewrites the mutable columns of an activity
func (a *ActivityAdapter) Update(ctx context.Context, activity *entities.Activity) error {
	record := goqu.Record{
		"active":         activity.Active,
		"title":          activity.Title,
		"description":    sql.NullString{String: activity.Description, Valid: activity.Description != ""},
		"start_date":     activity.StartDate,
		"end_date":       activity.EndDate,
		"modified_date":  activity.ModifiedDate,
		"modified_by_id": activity.ModifiedByID,
	}

	query, args, err := a.db.Update("activity").
		Set(record).
		Where(goqu.Ex{"id": activity.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("activity with id %d not found", activity.ID))
}

// SoftDelete marks an activity deleted
func (a *ActivityAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "activity", id, audit)
}

// List retrieves activities ordered by id
func (a *ActivityAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Activity, error) {
	filter = filter.Normalize()

	ds := a.db.Select(activityColumns...).From("activity")
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

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activities", err)
	}
	defer rows.Close()

	var activities []*entities.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan activity", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate activities", err)
	}
	return activities, nil
}

func scanActivity(row rowScanner) (*entities.Activity, error) {
	activity := &entities.Activity{}
	var description, createdBy, modifiedBy sql.NullString
	var endDate sql.NullTime

	err := row.Scan(
		&activity.ID,
		&activity.Active,
		&activity.IsDeleted,
		&activity.Title,
		&description,
		&activity.StartDate,
		&endDate,
		&activity.CreatedDate,
		&activity.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	activity.Description = description.String
	activity.CreatedByID = createdBy.String
	activity.ModifiedByID = modifiedBy.String
	if endDate.Valid {
		activity.EndDate = &endDate.Time
	}
	return activity, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// execExpectingRow runs a mutation that must touch exactly one live row.
func execExpectingRow(ctx context.Context, client *postgres.Client, query string, args []interface{}, notFoundMsg string) error {
	result, err := client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to execute statement", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return nil
}

// softDelete flips is_deleted on one live row, stamping the acting user.
// Rows are never physically removed.
func softDelete(ctx context.Context, client *postgres.Client, db *goqu.Database, table string, id int64, audit entities.AuditInfo) error {
	query, args, err := db.Update(table).
		Set(goqu.Record{
			"is_deleted":     true,
			"modified_date":  time.Now().UTC(),
			"modified_by_id": audit.ActorID,
		}).
		Where(goqu.Ex{"id": id, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	return execExpectingRow(ctx, client, query, args, fmt.Sprintf("%s with id %d not found", table, id))
}
