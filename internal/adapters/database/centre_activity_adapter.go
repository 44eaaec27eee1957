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

var centreActivityColumns = []interface{}{
	"id", "activity_id", "active", "is_deleted", "is_compulsory", "is_fixed", "is_group",
	"min_duration", "max_duration", "min_people_req", "fixed_time_slots",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// CentreActivityAdapter implements CentreActivityRepository
type CentreActivityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.CentreActivityRepository = (*CentreActivityAdapter)(nil)

// NewCentreActivityAdapter creates a new centre activity adapter
func NewCentreActivityAdapter(client *postgres.Client) *CentreActivityAdapter {
	return &CentreActivityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new centre activity and fills its generated id
func (a *CentreActivityAdapter) Create(ctx context.Context, ca *entities.CentreActivity) error {
	record := goqu.Record{
		"activity_id":      ca.ActivityID,
		"active":           ca.Active,
		"is_deleted":       ca.IsDeleted,
		"is_compulsory":    ca.IsCompulsory,
		"is_fixed":         ca.IsFixed,
		"is_group":         ca.IsGroup,
		"min_duration":     ca.MinDuration,
		"max_duration":     ca.MaxDuration,
		"min_people_req":   ca.MinPeopleReq,
		"fixed_time_slots": sql.NullString{String: ca.FixedTimeSlots, Valid: ca.FixedTimeSlots != ""},
		"created_date":     ca.CreatedDate,
		"modified_date":    ca.ModifiedDate,
		"created_by_id":    ca.CreatedByID,
		"modified_by_id":   ca.ModifiedByID,
	}

	query, args, err := a.db.Insert("centre_activity").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&ca.ID); err != nil {
		return apperrors.NewInternalError("failed to create centre activity", err)
	}
	return nil
}

// GetByID retrieves a centre activity by id
func (a *CentreActivityAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivity, error) {
	ds := a.db.Select(centreActivityColumns...).From("centre_activity").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ca, err := scanCentreActivity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("centre activity with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan centre activity", err)
	}
	return ca, nil
}

// Update rewrites the mutable columns of a centre activity
func (a *CentreActivityAdapter) Update(ctx context.Context, ca *entities.CentreActivity) error {
	record := goqu.Record{
		"activity_id":      ca.ActivityID,
		"active":           ca.Active,
		"is_compulsory":    ca.IsCompulsory,
		"is_fixed":         ca.IsFixed,
		"is_group":         ca.IsGroup,
		"min_duration":     ca.MinDuration,
		"max_duration":     ca.MaxDuration,
		"min_people_req":   ca.MinPeopleReq,
		"fixed_time_slots": sql.NullString{String: ca.FixedTimeSlots, Valid: ca.FixedTimeSlots != ""},
		"modified_date":    ca.ModifiedDate,
		"modified_by_id":   ca.ModifiedByID,
	}

	query, args, err := a.db.Update("centre_activity").
		Set(record).
		Where(goqu.Ex{"id": ca.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("centre activity with id %d not found", ca.ID))
}

// SoftDelete marks a centre activity deleted
func (a *CentreActivityAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "centre_activity", id, audit)
}

// List retrieves centre activities ordered by id
func (a *CentreActivityAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return a.list(ctx, filter, nil)
}

// ListByActivity retrieves the live offerings of one activity template
func (a *CentreActivityAdapter) ListByActivity(ctx context.Context, activityID int64, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return a.list(ctx, filter, goqu.Ex{"activity_id": activityID})
}

func (a *CentreActivityAdapter) list(ctx context.Context, filter repositories.ListFilter, where goqu.Ex) ([]*entities.CentreActivity, error) {
	filter = filter.Normalize()

	ds := a.db.Select(centreActivityColumns...).From("centre_activity")
	if where != nil {
		ds = ds.Where(where)
	}
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
		return nil, apperrors.NewInternalError("failed to list centre activities", err)
	}
	defer rows.Close()

	var cas []*entities.CentreActivity
	for rows.Next() {
		ca, err := scanCentreActivity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan centre activity", err)
		}
		cas = append(cas, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate centre activities", err)
	}
	return cas, nil
}

func scanCentreActivity(row rowScanner) (*entities.CentreActivity, error) {
	ca := &entities.CentreActivity{}
	var fixedTimeSlots, createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&ca.ID,
		&ca.ActivityID,
		&ca.Active,
		&ca.IsDeleted,
		&ca.IsCompulsory,
		&ca.IsFixed,
		&ca.IsGroup,
		&ca.MinDuration,
		&ca.MaxDuration,
		&ca.MinPeopleReq,
		&fixedTimeSlots,
		&ca.CreatedDate,
		&ca.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	ca.FixedTimeSlots = fixedTimeSlots.String
	ca.CreatedByID = createdBy.String
	ca.ModifiedByID = modifiedBy.String
	return ca, nil
}
