package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// ScheduleService resolves the concrete schedulable time slots of a centre
// activity over a date range. Fixed offerings expand their weekly slot
// references against the centre slot grid; flexible offerings surface their
// explicit availability windows. The two sources are never merged or
// deduplicated against each other.
type ScheduleService struct {
	centreActivities repositories.CentreActivityRepository
	availabilities   repositories.AvailabilityRepository
	slotConfig       providers.ScheduleConfigProvider
	metrics          *observability.Metrics
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	centreActivities repositories.CentreActivityRepository,
	availabilities repositories.AvailabilityRepository,
	slotConfig providers.ScheduleConfigProvider,
	metrics *observability.Metrics,
) *ScheduleService {
	return &ScheduleService{
		centreActivities: centreActivities,
		availabilities:   availabilities,
		slotConfig:       slotConfig,
		metrics:          metrics,
	}
}

// ResolveSchedule returns the time slots of the centre activity over
// [from, to), ordered by start time. Fixed expansion yields the slots whose
// start falls within the range; availability windows are surfaced whole
// whenever they overlap it. An inactive or deleted offering yields no slots.
func (s *ScheduleService) ResolveSchedule(ctx context.Context, centreActivityID int64, from, to time.Time) ([]entities.TimeSlot, error) {
	ctx, span := observability.StartSpan(ctx, "ScheduleService.ResolveSchedule")
	defer span.End()

	if !from.Before(to) {
		return nil, apperrors.NewValidationError("range start must be before range end")
	}

	ca, err := s.centreActivities.GetByID(ctx, centreActivityID, false)
	if err != nil {
		return nil, err
	}
	if !ca.IsSchedulable() {
		return []entities.TimeSlot{}, nil
	}

	var slots []entities.TimeSlot
	if ca.HasFixedSlots() {
		slots, err = s.expandFixedSlots(ctx, ca, from, to)
		if err != nil {
			return nil, err
		}
	} else {
		if ca.IsFixed {
			// Seed data contains fixed rows with no slot encoding; they behave
			// as flexible offerings.
			observability.LoggerFromContext(ctx).Warn().
				Int64("centre_activity_id", ca.ID).
				Msg("Fixed centre activity has no fixed time slots, resolving as flexible")
		}
		slots, err = s.collectAvailabilitySlots(ctx, ca, from, to)
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].End.Before(slots[j].End)
	})

	if s.metrics != nil {
		s.metrics.SlotsResolvedCount.Add(ctx, int64(len(slots)))
	}
	return slots, nil
}

// expandFixedSlots walks each day of the range and materializes a slot for
// every slot reference landing on that weekday.
func (s *ScheduleService) expandFixedSlots(ctx context.Context, ca *entities.CentreActivity, from, to time.Time) ([]entities.TimeSlot, error) {
	refs, err := ca.FixedSlotRefs()
	if err != nil {
		return nil, apperrors.NewConstraintViolationError(
			fmt.Sprintf("centre activity %d has malformed fixed time slots: %v", ca.ID, err))
	}

	// Group refs by weekday so each day of the range is matched in one pass.
	byWeekday := make(map[int][]entities.SlotRef)
	for _, ref := range refs {
		byWeekday[ref.Weekday] = append(byWeekday[ref.Weekday], ref)
	}

	slots := []entities.TimeSlot{}
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		weekday := entities.ScheduleWeekday(day.Weekday())
		for _, ref := range byWeekday[weekday] {
			window, err := s.slotConfig.SlotWindow(ctx, ref.Weekday, ref.SlotIndex)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return nil, apperrors.NewConstraintViolationError(
						fmt.Sprintf("centre activity %d references unconfigured slot %d-%d", ca.ID, ref.Weekday, ref.SlotIndex))
				}
				return nil, err
			}

			if err := checkDurationBounds(ca, window.Duration); err != nil {
				return nil, err
			}

			start := day.Add(window.StartOfDay)
			if start.Before(from) || !start.Before(to) {
				continue
			}

			ref := ref
			slots = append(slots, entities.TimeSlot{
				CentreActivityID: ca.ID,
				Start:            start,
				End:              start.Add(window.Duration),
				Source:           entities.SlotSourceFixed,
				Weekday:          &ref.Weekday,
				SlotIndex:        &ref.SlotIndex,
			})
		}
	}
	return slots, nil
}

func (s *ScheduleService) collectAvailabilitySlots(ctx context.Context, ca *entities.CentreActivity, from, to time.Time) ([]entities.TimeSlot, error) {
	windows, err := s.availabilities.ListOverlapping(ctx, ca.ID, from, to)
	if err != nil {
		return nil, err
	}

	slots := make([]entities.TimeSlot, 0, len(windows))
	for _, w := range windows {
		if err := checkDurationBounds(ca, w.EndTime.Sub(w.StartTime)); err != nil {
			return nil, err
		}
		slots = append(slots, entities.TimeSlot{
			CentreActivityID: ca.ID,
			Start:            w.StartTime,
			End:              w.EndTime,
			Source:           entities.SlotSourceAvailability,
		})
	}
	return slots, nil
}

// checkDurationBounds rejects slot windows that disagree with the activity's
// own duration limits. This is stored-data corruption, not caller error.
func checkDurationBounds(ca *entities.CentreActivity, d time.Duration) error {
	minutes := int(d / time.Minute)
	if ca.MinDuration > 0 && minutes < ca.MinDuration {
		return apperrors.NewConstraintViolationError(
			fmt.Sprintf("slot duration %dm is below the %dm minimum of centre activity %d", minutes, ca.MinDuration, ca.ID))
	}
	if ca.MaxDuration > 0 && minutes > ca.MaxDuration {
		return apperrors.NewConstraintViolationError(
			fmt.Sprintf("slot duration %dm exceeds the %dm maximum of centre activity %d", minutes, ca.MaxDuration, ca.ID))
	}
	return nil
}
