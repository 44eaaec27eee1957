package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// DBProvider reads the (weekday, slot index) grid from the centre_slot_config
// table. Rows are keyed by weekday 0=Monday..6=Sunday and a slot index, and
// hold the offset from midnight plus a duration, both in minutes.
type DBProvider struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ providers.ScheduleConfigProvider = (*DBProvider)(nil)

// NewDBProvider creates a database-backed schedule config provider
func NewDBProvider(client *postgres.Client) *DBProvider {
	return &DBProvider{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// SlotWindow returns the configured window for the given weekday and slot index
func (p *DBProvider) SlotWindow(ctx context.Context, weekday, slotIndex int) (providers.SlotWindow, error) {
	query, args, err := p.db.Select("start_minutes", "duration_minutes").
		From("centre_slot_config").
		Where(goqu.Ex{"weekday": weekday, "slot_index": slotIndex}).
		ToSQL()
	if err != nil {
		return providers.SlotWindow{}, apperrors.NewInternalError("failed to build slot window query", err)
	}

	var startMinutes, durationMinutes int
	err = p.client.DB().QueryRowContext(ctx, query, args...).Scan(&startMinutes, &durationMinutes)
	if err == sql.ErrNoRows {
		return providers.SlotWindow{}, apperrors.NewNotFoundError(fmt.Sprintf("no slot configured for weekday %d index %d", weekday, slotIndex))
	}
	if err != nil {
		return providers.SlotWindow{}, apperrors.NewInternalError("failed to scan slot window", err)
	}

	return providers.SlotWindow{
		StartOfDay: time.Duration(startMinutes) * time.Minute,
		Duration:   time.Duration(durationMinutes) * time.Minute,
	}, nil
}
