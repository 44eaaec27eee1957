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

var adhocColumns = []interface{}{
	"id", "old_centre_activity_id", "new_centre_activity_id", "patient_id", "is_deleted",
	"status", "start_time", "end_time", "created_date", "modified_date", "created_by_id", "modified_by_id",
}

// AdhocAdapter implements AdhocRepository
type AdhocAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.AdhocRepository = (*AdhocAdapter)(nil)

// NewAdhocAdapter creates a new adhoc adapter
func NewAdhocAdapter(client *postgres.Client) *AdhocAdapter {
	return &AdhocAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new substitution and fills its generated id
func (a *AdhocAdapter) Create(ctx context.Context, adhoc *entities.Adhoc) error {
	record := goqu.Record{
		"old_centre_activity_id": adhoc.OldCentreActivityID,
		"new_centre_activity_id": adhoc.NewCentreActivityID,
		"patient_id":             adhoc.PatientID,
		"is_deleted":             adhoc.IsDeleted,
		"status":                 string(adhoc.Status),
		"start_time":             adhoc.StartTime,
		"end_time":               adhoc.EndTime,
		"created_date":           adhoc.CreatedDate,
		"modified_date":          adhoc.ModifiedDate,
		"created_by_id":          adhoc.CreatedByID,
		"modified_by_id":         adhoc.ModifiedByID,
	}

	query, args, err := a.db.Insert("adhoc").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&adhoc.ID); err != nil {
		return apperrors.NewInternalError("failed to create adhoc", err)
	}
	return nil
}

// GetByID retrieves a substitution by id
func (a *AdhocAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Adhoc, error) {
	ds := a.db.Select(adhocColumns...).From("adhoc").Where(goqu.Ex{"id": id})
	if !includeDeleted {
		ds = ds.Where(goqu.Ex{"is_deleted": false})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	adhoc, err := scanAdhoc(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("adhoc with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan adhoc", err)
	}
	return adhoc, nil
}

// Update rewrites the mutable columns of a substitution
func (a *AdhocAdapter) Update(ctx context.Context, adhoc *entities.Adhoc) error {
	record := goqu.Record{
		"old_centre_activity_id": adhoc.OldCentreActivityID,
		"new_centre_activity_id": adhoc.NewCentreActivityID,
		"patient_id":             adhoc.PatientID,
		"status":                 string(adhoc.Status),
		"start_time":             adhoc.StartTime,
		"end_time":               adhoc.EndTime,
		"modified_date":          adhoc.ModifiedDate,
		"modified_by_id":         adhoc.ModifiedByID,
	}

	query, args, err := a.db.Update("adhoc").
		Set(record).
		Where(goqu.Ex{"id": adhoc.ID, "is_deleted": false}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execExpectingRow(ctx, a.client, query, args, fmt.Sprintf("adhoc with id %d not found", adhoc.ID))
}

// SoftDelete marks a substitution deleted
func (a *AdhocAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	return softDelete(ctx, a.client, a.db, "adhoc", id, audit)
}

// List retrieves substitutions ordered by id
func (a *AdhocAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	return a.list(ctx, filter, nil)
}

// ListByPatient retrieves the live substitutions of one patient
func (a *AdhocAdapter) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	return a.list(ctx, filter, goqu.Ex{"patient_id": patientID})
}

func (a *AdhocAdapter) list(ctx context.Context, filter repositories.ListFilter, where goqu.Ex) ([]*entities.Adhoc, error) {
	filter = filter.Normalize()

	ds := a.db.Select(adhocColumns...).From("adhoc")
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
	return a.queryMany(ctx, query, args)
}

// FindApproved retrieves the approved live substitution redirecting the given
// centre activity for the patient at the given time, or nil when none applies.
// The window is inclusive of start and exclusive of end.
func (a *AdhocAdapter) FindApproved(ctx context.Context, patientID string, oldCentreActivityID int64, at time.Time) (*entities.Adhoc, error) {
	query, args, err := a.db.Select(adhocColumns...).
		From("adhoc").
		Where(
			goqu.Ex{
				"patient_id":             patientID,
				"old_centre_activity_id": oldCentreActivityID,
				"status":                 string(entities.AdhocStatusApproved),
				"is_deleted":             false,
			},
			goqu.I("start_time").Lte(at),
			goqu.I("end_time").Gt(at),
		).
		Order(goqu.I("created_date").Desc(), goqu.I("id").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	adhoc, err := scanAdhoc(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan adhoc", err)
	}
	return adhoc, nil
}

// TransitionStatus moves a pending row to the target status. The update is
// guarded by the modified_date the caller last read; losing a race surfaces
// as a stale-state error so the caller can refetch and retry.
func (a *AdhocAdapter) TransitionStatus(ctx context.Context, id int64, target entities.AdhocStatus, expectedModified time.Time, audit entities.AuditInfo) error {
	query, args, err := a.db.Update("adhoc").
		Set(goqu.Record{
			"status":         string(target),
			"modified_date":  time.Now().UTC(),
			"modified_by_id": audit.ActorID,
		}).
		Where(goqu.Ex{
			"id":            id,
			"is_deleted":    false,
			"status":        string(entities.AdhocStatusPending),
			"modified_date": expectedModified,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build transition query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to transition adhoc status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if affected > 0 {
		return nil
	}

	// Distinguish a missing row from a concurrent transition.
	current, err := a.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	if current.Status != entities.AdhocStatusPending {
		return apperrors.NewStaleStateError(fmt.Sprintf("adhoc %d is already %s", id, current.Status))
	}
	return apperrors.NewStaleStateError(fmt.Sprintf("adhoc %d was modified concurrently", id))
}

func (a *AdhocAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.Adhoc, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list adhocs", err)
	}
	defer rows.Close()

	var adhocs []*entities.Adhoc
	for rows.Next() {
		adhoc, err := scanAdhoc(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan adhoc", err)
		}
		adhocs = append(adhocs, adhoc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate adhocs", err)
	}
	return adhocs, nil
}

func scanAdhoc(row rowScanner) (*entities.Adhoc, error) {
	adhoc := &entities.Adhoc{}
	var status string
	var createdBy, modifiedBy sql.NullString

	err := row.Scan(
		&adhoc.ID,
		&adhoc.OldCentreActivityID,
		&adhoc.NewCentreActivityID,
		&adhoc.PatientID,
		&adhoc.IsDeleted,
		&status,
		&adhoc.StartTime,
		&adhoc.EndTime,
		&adhoc.CreatedDate,
		&adhoc.ModifiedDate,
		&createdBy,
		&modifiedBy,
	)
	if err != nil {
		return nil, err
	}

	adhoc.Status = entities.AdhocStatus(status)
	adhoc.CreatedByID = createdBy.String
	adhoc.ModifiedByID = modifiedBy.String
	return adhoc, nil
}
