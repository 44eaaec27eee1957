package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// MockCentreActivityRepository mocks repositories.CentreActivityRepository
type MockCentreActivityRepository struct {
	mock.Mock
}

func (m *MockCentreActivityRepository) Create(ctx context.Context, ca *entities.CentreActivity) error {
	args := m.Called(ctx, ca)
	return args.Error(0)
}

func (m *MockCentreActivityRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivity, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CentreActivity), args.Error(1)
}

func (m *MockCentreActivityRepository) Update(ctx context.Context, ca *entities.CentreActivity) error {
	args := m.Called(ctx, ca)
	return args.Error(0)
}

func (m *MockCentreActivityRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockCentreActivityRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivity), args.Error(1)
}

func (m *MockCentreActivityRepository) ListByActivity(ctx context.Context, activityID int64, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	args := m.Called(ctx, activityID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivity), args.Error(1)
}

// MockAvailabilityRepository mocks repositories.AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) Create(ctx context.Context, availability *entities.CentreActivityAvailability) error {
	args := m.Called(ctx, availability)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityAvailability, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CentreActivityAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, availability *entities.CentreActivityAvailability) error {
	args := m.Called(ctx, availability)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityAvailability, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) ListOverlapping(ctx context.Context, centreActivityID int64, from, to time.Time) ([]*entities.CentreActivityAvailability, error) {
	args := m.Called(ctx, centreActivityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityAvailability), args.Error(1)
}

// MockExclusionRepository mocks repositories.ExclusionRepository
type MockExclusionRepository struct {
	mock.Mock
}

func (m *MockExclusionRepository) Create(ctx context.Context, exclusion *entities.CentreActivityExclusion) error {
	args := m.Called(ctx, exclusion)
	return args.Error(0)
}

func (m *MockExclusionRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityExclusion, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CentreActivityExclusion), args.Error(1)
}

func (m *MockExclusionRepository) Update(ctx context.Context, exclusion *entities.CentreActivityExclusion) error {
	args := m.Called(ctx, exclusion)
	return args.Error(0)
}

func (m *MockExclusionRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockExclusionRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityExclusion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityExclusion), args.Error(1)
}

func (m *MockExclusionRepository) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityExclusion, error) {
	args := m.Called(ctx, patientID, centreActivityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityExclusion), args.Error(1)
}

// MockRecommendationRepository mocks repositories.RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) Create(ctx context.Context, rec *entities.CentreActivityRecommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityRecommendation, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CentreActivityRecommendation), args.Error(1)
}

func (m *MockRecommendationRepository) Update(ctx context.Context, rec *entities.CentreActivityRecommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockRecommendationRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityRecommendation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityRecommendation), args.Error(1)
}

func (m *MockRecommendationRepository) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityRecommendation, error) {
	args := m.Called(ctx, patientID, centreActivityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityRecommendation), args.Error(1)
}

// MockPreferenceRepository mocks repositories.PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Create(ctx context.Context, pref *entities.CentreActivityPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func (m *MockPreferenceRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivityPreference, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CentreActivityPreference), args.Error(1)
}

func (m *MockPreferenceRepository) Update(ctx context.Context, pref *entities.CentreActivityPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

func (m *MockPreferenceRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockPreferenceRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivityPreference, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityPreference), args.Error(1)
}

func (m *MockPreferenceRepository) ListForPatientActivity(ctx context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityPreference, error) {
	args := m.Called(ctx, patientID, centreActivityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CentreActivityPreference), args.Error(1)
}

// MockAdhocRepository mocks repositories.AdhocRepository
type MockAdhocRepository struct {
	mock.Mock
}

func (m *MockAdhocRepository) Create(ctx context.Context, adhoc *entities.Adhoc) error {
	args := m.Called(ctx, adhoc)
	return args.Error(0)
}

func (m *MockAdhocRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Adhoc, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Adhoc), args.Error(1)
}

func (m *MockAdhocRepository) Update(ctx context.Context, adhoc *entities.Adhoc) error {
	args := m.Called(ctx, adhoc)
	return args.Error(0)
}

func (m *MockAdhocRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockAdhocRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Adhoc), args.Error(1)
}

func (m *MockAdhocRepository) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Adhoc, error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Adhoc), args.Error(1)
}

func (m *MockAdhocRepository) FindApproved(ctx context.Context, patientID string, oldCentreActivityID int64, at time.Time) (*entities.Adhoc, error) {
	args := m.Called(ctx, patientID, oldCentreActivityID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Adhoc), args.Error(1)
}

func (m *MockAdhocRepository) TransitionStatus(ctx context.Context, id int64, target entities.AdhocStatus, expectedModified time.Time, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, target, expectedModified, audit)
	return args.Error(0)
}

// MockActivityRepository mocks repositories.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *entities.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Activity, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Activity), args.Error(1)
}

func (m *MockActivityRepository) Update(ctx context.Context, activity *entities.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockActivityRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Activity), args.Error(1)
}

// stubSlotConfig serves a fixed grid: one-hour slots starting at 09:00,
// indexes 0..7, every weekday.
type stubSlotConfig struct{}

func (stubSlotConfig) SlotWindow(_ context.Context, weekday, slotIndex int) (providers.SlotWindow, error) {
	if weekday < 0 || weekday > 6 || slotIndex < 0 || slotIndex > 7 {
		return providers.SlotWindow{}, apperrors.NewNotFoundError("no slot configured")
	}
	return providers.SlotWindow{
		StartOfDay: 9*time.Hour + time.Duration(slotIndex)*time.Hour,
		Duration:   time.Hour,
	}, nil
}

// MockRoutineRepository mocks repositories.RoutineRepository
type MockRoutineRepository struct {
	mock.Mock
}

func (m *MockRoutineRepository) Create(ctx context.Context, routine *entities.Routine) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *MockRoutineRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.Routine, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Routine), args.Error(1)
}

func (m *MockRoutineRepository) Update(ctx context.Context, routine *entities.Routine) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *MockRoutineRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockRoutineRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.Routine, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Routine), args.Error(1)
}

func (m *MockRoutineRepository) ListByPatient(ctx context.Context, patientID string, filter repositories.ListFilter) ([]*entities.Routine, error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Routine), args.Error(1)
}

// MockRoutineExclusionRepository mocks repositories.RoutineExclusionRepository
type MockRoutineExclusionRepository struct {
	mock.Mock
}

func (m *MockRoutineExclusionRepository) Create(ctx context.Context, exclusion *entities.RoutineExclusion) error {
	args := m.Called(ctx, exclusion)
	return args.Error(0)
}

func (m *MockRoutineExclusionRepository) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.RoutineExclusion, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RoutineExclusion), args.Error(1)
}

func (m *MockRoutineExclusionRepository) Update(ctx context.Context, exclusion *entities.RoutineExclusion) error {
	args := m.Called(ctx, exclusion)
	return args.Error(0)
}

func (m *MockRoutineExclusionRepository) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	args := m.Called(ctx, id, audit)
	return args.Error(0)
}

func (m *MockRoutineExclusionRepository) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.RoutineExclusion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoutineExclusion), args.Error(1)
}

func (m *MockRoutineExclusionRepository) ListForRoutine(ctx context.Context, routineID int64) ([]*entities.RoutineExclusion, error) {
	args := m.Called(ctx, routineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RoutineExclusion), args.Error(1)
}
