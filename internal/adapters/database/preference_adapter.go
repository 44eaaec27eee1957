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

var preferenceColumns = []interface{}{
	"id", "centre_activity_id", "patient_id", "is_like", "is_deleted",
	"created_date", "modified_date", "created_by_id", "modified_by_id",
}

// PreferenceAdapter implements PreferenceRepository
type PreferenceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.PreferenceRepository = (*PreferenceAdapter)(nil)

// NewPreferenceAdapter creates a new preference adapter
func NewPreferenceAdapter(client *postgres.Client) *PreferenceAdapter {
	return &PreferenceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new preference and fills its generated id
func (a *PreferenceAdapter) Create(ctx context.Context, pref *entities.CentreActivityPreference) error {
	record := goqu.Record{
		"centre_activity_id": pref.CentreActivityID,
		"patient_id":         pref.PatientID,
		"is_like":            pref.IsLike,
		"is_deleted":         pref.IsDeleted,
		"created_date":       pref.CreatedDate,
		"modified_date":      pref.ModifiedDate,
		"created_by_id":      pref.CreatedByID,
		"modified_by_id":     pref.ModifiedByID,
	}

	query, args, err := a.db.Insert("centre_activity_preference").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&pref.ID); err != nil {
		return apperrors.NewInternalError("failed to create preference", err)
	}
	return nil
}

// GetByID retrieves a preference by id
func (a *PreferenceAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityPreference, error) {
	ds := a.db.Select(preferenceColumns...).From("centre_activity_preference").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	pref, err := scanPreference(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("preference with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan preference", err)
	}
	return pref, nil
}

// Update rewrites the mutable columns of a preference
func (a *PreferenceAdapter) Update(ctx context.Context, pref *entities.CentreActivityPreference) error {
	record := goqu.Record{
		"is_like":        pref.IsLike,
		"modified_date":  pref.ModifiedDate,
		"modified_by_id": pref.ModifiedByID,
	}

	query, args, err := a.db.Update("centre_activity_preference").
		Set(record).
		Where(goqu.Ex{"id": pref.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("preference with id %d not found", pref.ID))
}

// SoftDelete marks a preference deleted
func (a *PreferenceAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "centre_activity_preference", id, audit)
}

// List retrieves preferences ordered by id
func (a *PreferenceAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityPreference, error) {
	filter = filter.Normalize()

	ds := a.db.Select(preferenceColumns...).From("centre_activity_preference")
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

// ListForPatientActivity retrieves the live preferences of one patient on one
// centre activity, newest first
func (a *PreferenceAdapter) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityPreference, error) {
	query, args, err := a.db.Select(preferenceColumns...).
		From("centre_activity_preference").
		Where(goqu.Ex{
			"patient_id":         patientID,
			"centre_activity_id": centreActivityID,
			"is_deleted":         false,
		}).
		Order(goqu.I("created_date").Desc(), goqu.I("id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.queryMany(ctx, query, args)
}

func (a *PreferenceAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.CentreActivityPreference, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list preferences", err)
	}
	defer rows.Close()

	var prefs []*entities.CentreActivityPreference
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan preference", err)
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate preferences", err)
	}
	return prefs, nil
}

func scanPreference(row rowScanner) (*entities.CentreActivityPreference, error) {
	pref := &entities.CentreActivityPreference{}
	var createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&pref.ID,
		&pref.CentreActivityID,
		&pref.PatientID,
		&pref.IsLike,
		&pref.IsDeleted,
		&pref.CreatedDate,
		&pref.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	pref.CreatedByID = createdBy.String
	pref.ModifiedByID = modifiedBy.String
	return pref, nil
}
