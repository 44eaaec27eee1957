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

var careCentreColumns = []interface{}{
	"id", "name", "is_deleted", "country_code", "address", "postal_code",
	"contact_no", "email", "no_of_devices_avail", "working_days",
	"opening_hours", "closing_hours", "remarks",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// CareCentreAdapter implements CareCentreRepository
type CareCentreAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.CareCentreRepository = (*CareCentreAdapter)(nil)

// NewCareCentreAdapter creates a new care centre adapter
func NewCareCentreAdapter(client *postgres.Client) *CareCentreAdapter {
	return &CareCentreAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new care centre and fills its generated id
func (a *CareCentreAdapter) Create(ctx context.Context, centre *entities.CareCentre) error {
	record := goqu.Record{
		"name":                centre.Name,
		"is_deleted":          centre.IsDeleted,
		"country_code":        centre.CountryCode,
		"address":             sql.NullString{String: centre.Address, Valid: centre.Address != ""},
		"postal_code":         sql.NullString{String: centre.PostalCode, Valid: centre.PostalCode != ""},
		"contact_no":          sql.NullString{String: centre.ContactNo, Valid: centre.ContactNo != ""},
		"email":               sql.NullString{String: centre.Email, Valid: centre.Email != ""},
		"no_of_devices_avail": centre.NoOfDevicesAvail,
		"working_days":        sql.NullString{String: centre.WorkingDays, Valid: centre.WorkingDays != ""},
		"opening_hours":       sql.NullString{String: centre.OpeningHours, Valid: centre.OpeningHours != ""},
		"closing_hours":       sql.NullString{String: centre.ClosingHours, Valid: centre.ClosingHours != ""},
		"remarks":             sql.NullString{String: centre.Remarks, Valid: centre.Remarks != ""},
		"created_date":        centre.CreatedDate,
		"modified_date":       centre.ModifiedDate,
		"created_by_id":       centre.CreatedByID,
		"modified_by_id":      centre.ModifiedByID,
	}

	query, args, err := a.db.Insert("care_centre").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&centre.ID); err != nil {
		return apperrors.NewInternalError("failed to create care centre", err)
	}
	return nil
}

// GetByID retrieves a care centre by id
func (a *CareCentreAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CareCentre, error) {
	ds := a.db.Select(careCentreColumns...).From("care_centre").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	centre, err := scanCareCentre(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("care centre with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan care centre", err)
	}
	return centre, nil
}

// Update rewrites the mutable columns of a care centre
func (a *CareCentreAdapter) Update(ctx context.Context, centre *entities.CareCentre) error {
	record := goqu.Record{
		"name":                centre.Name,
		"country_code":        centre.CountryCode,
		"address":             sql.NullString{String: centre.Address, Valid: centre.Address != ""},
		"postal_code":         sql.NullString{String: centre.PostalCode, Valid: centre.PostalCode != ""},
		"contact_no":          sql.NullString{String: centre.ContactNo, Valid: centre.ContactNo != ""},
		"email":               sql.NullString{String: centre.Email, Valid: centre.Email != ""},
		"no_of_devices_avail": centre.NoOfDevicesAvail,
		"working_days":        sql.NullString{String: centre.WorkingDays, Valid: centre.WorkingDays != ""},
		"opening_hours":       sql.NullString{String: centre.OpeningHours, Valid: centre.OpeningHours != ""},
		"closing_hours":       sql.NullString{String: centre.ClosingHours, Valid: centre.ClosingHours != ""},
		"remarks":             sql.NullString{String: centre.Remarks, Valid: centre.Remarks != ""},
		"modified_date":       centre.ModifiedDate,
		"modified_by_id":      centre.ModifiedByID,
	}

	query, args, err := a.db.Update("care_centre").
		Set(record).
		Where(goqu.Ex{"id": centre.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("care centre with id %d not found", centre.ID))
}

// SoftDelete marks a care centre deleted
func (a *CareCentreAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "care_centre", id, audit)
}

// List retrieves care centres ordered by id
func (a *CareCentreAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CareCentre, error) {
	filter = filter.Normalize()

	ds := a.db.Select(careCentreColumns...).From("care_centre")
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
		return nil, apperrors.NewInternalError("failed to list care centres", err)
	}
	defer rows.Close()

	var centres []*entities.CareCentre
	for rows.Next() {
		centre, err := scanCareCentre(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan care centre", err)
		}
		centres = append(centres, centre)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate care centres", err)
	}
	return centres, nil
}

func scanCareCentre(row rowScanner) (*entities.CareCentre, error) {
	centre := &entities.CareCentre{}
	var address, postalCode, contactNo, email sql.NullString
	var workingDays, openingHours, closingHours, remarks sql.NullString
	var createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&centre.ID,
		&centre.Name,
		&centre.IsDeleted,
		&centre.CountryCode,
		&address,
		&postalCode,
		&contactNo,
		&email,
		&centre.NoOfDevicesAvail,
		&workingDays,
		&openingHours,
		&closingHours,
		&remarks,
		&centre.CreatedDate,
		&centre.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	centre.Address = address.String
	centre.PostalCode = postalCode.String
	centre.ContactNo = contactNo.String
	centre.Email = email.String
	centre.WorkingDays = workingDays.String
	centre.OpeningHours = openingHours.String
	centre.ClosingHours = closingHours.String
	centre.Remarks = remarks.String
	centre.CreatedByID = createdBy.String
	centre.ModifiedByID = modifiedBy.String
	return centre, nil
}
