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

var availabilityColumns = []interface{}{
	"id", "centre_activity_id", "is_deleted", "start_time", "end_time",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// AvailabilityAdapter implements AvailabilityRepository
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.AvailabilityRepository = (*AvailabilityAdapter)(nil)

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) *AvailabilityAdapter {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new availability window and fills its generated id
func (a *AvailabilityAdapter) Create(ctx context.Context, availability *entities.CentreActivityAvailability) error {
	record := goqu.Record{
		"centre_activity_id": availability.CentreActivityID,
		"is_deleted":         availability.IsDeleted,
		"start_time":         availability.StartTime,
		"end_time":           availability.EndTime,
		"created_date":       availability.CreatedDate,
		"modified_date":      availability.ModifiedDate,
		"created_by_id":      availability.CreatedByID,
		"modified_by_id":     availability.ModifiedByID,
	}

	query, args, err := a.db.Insert("centre_activity_availability").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&availability.ID); err != nil {
		return apperrors.NewInternalError("failed to create availability", err)
	}
	return nil
}

// GetByID retrieves an availability window by id
func (a *AvailabilityAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityAvailability, error) {
	ds := a.db.Select(availabilityColumns...).From("centre_activity_availability").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	availability, err := scanAvailability(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("availability with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan availability", err)
	}
	return availability, nil
}

// Update rewrites the mutable columns of an availability window
func (a *AvailabilityAdapter) Update(ctx context.Context, availability *entities.CentreActivityAvailability) error {
	record := goqu.Record{
		"centre_activity_id": availability.CentreActivityID,
		"start_time":         availability.StartTime,
		"end_time":           availability.EndTime,
		"modified_date":      availability.ModifiedDate,
		"modified_by_id":     availability.ModifiedByID,
	}

	query, args, err := a.db.Update("centre_activity_availability").
		Set(record).
		Where(goqu.Ex{"id": availability.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("availability with id %d not found", availability.ID))
}

// SoftDelete marks an availability window deleted
func (a *AvailabilityAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "centre_activity_availability", id, audit)
}

// List retrieves availability windows ordered by id
func (a *AvailabilityAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityAvailability, error) {
	filter = filter.Normalize()

	ds := a.db.Select(availabilityColumns...).From("centre_activity_availability")
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

// ListOverlapping retrieves the live windows of a centre activity that
// intersect [from, to), ordered by start time
func (a *AvailabilityAdapter) ListOverlapping(ctx context.Context, centreActivityID int64, from, to time.Time) ([]*entities.CentreActivityAvailability, error) {
	query, args, err := a.db.Select(availabilityColumns...).
		From("centre_activity_availability").
		Where(
			goqu.Ex{"centre_activity_id": centreActivityID, "is_deleted": false},
			goqu.I("start_time").Lt(to),
			goqu.I("end_time").Gt(from),
		).
		Order(goqu.I("start_time").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build overlap query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *AvailabilityAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.CentreActivityAvailability, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list availabilities", err)
	}
	defer rows.Close()

	var availabilities []*entities.CentreActivityAvailability
	for rows.Next() {
		availability, err := scanAvailability(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan availability", err)
		}
		availabilities = append(availabilities, availability)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate availabilities", err)
	}
	return availabilities, nil
}

func scanAvailability(row rowScanner) (*entities.CentreActivityAvailability, error) {
	availability := &entities.CentreActivityAvailability{}
	var createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&availability.ID,
		&availability.CentreActivityID,
		&availability.IsDeleted,
		&availability.StartTime,
		&availability.EndTime,
		&availability.CreatedDate,
		&availability.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	availability.CreatedByID = createdBy.String
	availability.ModifiedByID = modifiedBy.String
	return availability, nil
}
