package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

var recommendationColumns = []interface{}{
	"id", "centre_activity_id", "patient_id", "doctor_id", "doctor_recommendation",
	"doctor_remarks", "is_deleted", "created_date", "modified_date", "created_by_id", "modified_by_id",
}

// pqUniqueViolation is the Postgres error code for unique constraint failures.
const pqUniqueViolation = "23505"

// RecommendationAdapter implements RecommendationRepository. A partial unique
// index on (centre_activity_id, patient_id, doctor_id) WHERE is_deleted =
// false serializes concurrent doctors writing the same pair.
type RecommendationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.RecommendationRepository = (*RecommendationAdapter)(nil)

// NewRecommendationAdapter creates a new recommendation adapter
func NewRecommendationAdapter(client *postgres.Client) *RecommendationAdapter {
	return &RecommendationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new recommendation and fills its generated id
func (a *RecommendationAdapter) Create(ctx context.Context, rec *entities.CentreActivityRecommendation) error {
	record := goqu.Record{
		"centre_activity_id":    rec.CentreActivityID,
		"patient_id":            rec.PatientID,
		"doctor_id":             rec.DoctorID,
		"doctor_recommendation": rec.DoctorRecommendation,
		"doctor_remarks":        sql.NullString{String: rec.DoctorRemarks, Valid: rec.DoctorRemarks != ""},
		"is_deleted":            rec.IsDeleted,
		"created_date":          rec.CreatedDate,
		"modified_date":         rec.ModifiedDate,
		"created_by_id":         rec.CreatedByID,
		"modified_by_id":        rec.ModifiedByID,
	}

	query, args, err := a.db.Insert("centre_activity_recommendation").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return apperrors.NewConflictError("a live recommendation already exists for this centre activity, patient and doctor")
		}
		return apperrors.NewInternalError("failed to create recommendation", err)
	}
	return nil
}

// GetByID retrieves a recommendation by id
func (a *RecommendationAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityRecommendation, error) {
	ds := a.db.Select(recommendationColumns...).From("centre_activity_recommendation").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rec, err := scanRecommendation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("recommendation with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan recommendation", err)
	}
	return rec, nil
}

// Update rewrites the mutable columns of a recommendation
func (a *RecommendationAdapter) Update(ctx context.Context, rec *entities.CentreActivityRecommendation) error {
	record := goqu.Record{
		"doctor_recommendation": rec.DoctorRecommendation,
		"doctor_remarks":        sql.NullString{String: rec.DoctorRemarks, Valid: rec.DoctorRemarks != ""},
		"modified_date":         rec.ModifiedDate,
		"modified_by_id":        rec.ModifiedByID,
	}

	query, args, err := a.db.Update("centre_activity_recommendation").
		Set(record).
		Where(goqu.Ex{"id": rec.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("recommendation with id %d not found", rec.ID))
}

// SoftDelete marks a recommendation deleted
func (a *RecommendationAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "centre_activity_recommendation", id, audit)
}

// List retrieves recommendations ordered by id
func (a *RecommendationAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityRecommendation, error) {
	filter = filter.Normalize()

	ds := a.db.Select(recommendationColumns...).From("centre_activity_recommendation")
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

// ListForPatientActivity retrieves the live recommendations of one patient on
// one centre activity, newest first so aggregation is deterministic
func (a *RecommendationAdapter) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityRecommendation, error) {
	query, args, err := a.db.Select(recommendationColumns...).
		From("centre_activity_recommendation").
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

func (a *RecommendationAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.CentreActivityRecommendation, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recommendations", err)
	}
	defer rows.Close()

	var recs []*entities.CentreActivityRecommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan recommendation", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate recommendations", err)
	}
	return recs, nil
}

func scanRecommendation(row rowScanner) (*entities.CentreActivityRecommendation, error) {
	rec := &entities.CentreActivityRecommendation{}
	var remarks, createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&rec.ID,
		&rec.CentreActivityID,
		&rec.PatientID,
		&rec.DoctorID,
		&rec.DoctorRecommendation,
		&remarks,
		&rec.IsDeleted,
		&rec.CreatedDate,
		&rec.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	rec.DoctorRemarks = remarks.String
	rec.CreatedByID = createdBy.String
	rec.ModifiedByID = modifiedBy.String
	return rec, nil
}
