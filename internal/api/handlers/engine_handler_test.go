package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecentral/activity-service/internal/adapters/schedule"
	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// stubCentreActivityRepo overrides only GetByID; the embedded interface
// panics if anything else is called.
type stubCentreActivityRepo struct {
	repositories.CentreActivityRepository
	getByID func(id int64) (*entities.CentreActivity, error)
}

func (s *stubCentreActivityRepo) GetByID(_ context.Context, id int64, _ bool) (*entities.CentreActivity, error) {
	return s.getByID(id)
}

type stubAvailabilityRepo struct {
	repositories.AvailabilityRepository
	listOverlapping func(centreActivityID int64, from, to time.Time) ([]*entities.CentreActivityAvailability, error)
}

func (s *stubAvailabilityRepo) ListOverlapping(_ context.Context, centreActivityID int64, from, to time.Time) ([]*entities.CentreActivityAvailability, error) {
	return s.listOverlapping(centreActivityID, from, to)
}

type stubExclusionRepo struct {
	repositories.ExclusionRepository
	listForPatient func(patientID string, centreActivityID int64) ([]*entities.CentreActivityExclusion, error)
}

func (s *stubExclusionRepo) ListForPatientActivity(_ context.Context, patientID string, centreActivityID int64) ([]*entities.CentreActivityExclusion, error) {
	return s.listForPatient(patientID, centreActivityID)
}

type stubAdhocRepo struct {
	repositories.AdhocRepository
	findApproved func(patientID string, oldCentreActivityID int64, at time.Time) (*entities.Adhoc, error)
}

func (s *stubAdhocRepo) FindApproved(_ context.Context, patientID string, oldCentreActivityID int64, at time.Time) (*entities.Adhoc, error) {
	return s.findApproved(patientID, oldCentreActivityID, at)
}

func newEngineMux(h *EngineHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/centre-activities/{id}/schedule", h.GetSchedule)
	mux.HandleFunc("GET /api/v1/centre-activities/{id}/eligibility", h.GetEligibility)
	mux.HandleFunc("GET /api/v1/centre-activities/{id}/suitability", h.GetSuitability)
	return mux
}

func TestEngineHandler_GetSchedule(t *testing.T) {
	caRepo := &stubCentreActivityRepo{getByID: func(id int64) (*entities.CentreActivity, error) {
		return &entities.CentreActivity{
			ID: id, ActivityID: 1, Active: true, IsFixed: true,
			MinDuration: 30, MaxDuration: 60, FixedTimeSlots: "0-3",
		}, nil
	}}
	availRepo := &stubAvailabilityRepo{}
	svc := services.NewScheduleService(caRepo, availRepo, schedule.NewDefaultStaticProvider(), nil)
	mux := newEngineMux(NewEngineHandler(svc, nil, nil))

	t.Run("resolves fixed slots", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/api/v1/centre-activities/10/schedule?from=2026-03-02T00:00:00Z&to=2026-03-16T00:00:00Z", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Count int                 `json:"count"`
			Slots []entities.TimeSlot `json:"slots"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Count)
		assert.Equal(t, entities.SlotSourceFixed, body.Slots[0].Source)
	})

	t.Run("missing range is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/centre-activities/10/schedule", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("GET",
			"/api/v1/centre-activities/abc/schedule?from=2026-03-02T00:00:00Z&to=2026-03-16T00:00:00Z", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEngineHandler_GetEligibility(t *testing.T) {
	t.Run("excluded patient", func(t *testing.T) {
		caRepo := &stubCentreActivityRepo{getByID: func(id int64) (*entities.CentreActivity, error) {
			return &entities.CentreActivity{ID: id, Active: true, MinDuration: 30, MaxDuration: 60}, nil
		}}
		exclRepo := &stubExclusionRepo{listForPatient: func(string, int64) ([]*entities.CentreActivityExclusion, error) {
			return []*entities.CentreActivityExclusion{
				{ExclusionRemarks: "doctor's orders", StartDate: time.Now().AddDate(0, 0, -1)},
			}, nil
		}}
		adhocRepo := &stubAdhocRepo{findApproved: func(string, int64, time.Time) (*entities.Adhoc, error) {
			return nil, nil
		}}
		svc := services.NewEligibilityService(caRepo, exclRepo, adhocRepo, nil)
		mux := newEngineMux(NewEngineHandler(nil, svc, nil))

		req := httptest.NewRequest("GET", "/api/v1/centre-activities/10/eligibility?patient_id=patient-1", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var decision entities.EligibilityDecision
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decision))
		assert.Equal(t, entities.EligibilityExcluded, decision.Status)
		assert.Equal(t, "doctor's orders", decision.Reason)
	})

	t.Run("inactive offering is unprocessable", func(t *testing.T) {
		caRepo := &stubCentreActivityRepo{getByID: func(id int64) (*entities.CentreActivity, error) {
			return &entities.CentreActivity{ID: id, Active: false}, nil
		}}
		svc := services.NewEligibilityService(caRepo, &stubExclusionRepo{}, &stubAdhocRepo{}, nil)
		mux := newEngineMux(NewEngineHandler(nil, svc, nil))

		req := httptest.NewRequest("GET", "/api/v1/centre-activities/10/eligibility?patient_id=patient-1", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing patient id is a bad request", func(t *testing.T) {
		svc := services.NewEligibilityService(&stubCentreActivityRepo{}, &stubExclusionRepo{}, &stubAdhocRepo{}, nil)
		mux := newEngineMux(NewEngineHandler(nil, svc, nil))

		req := httptest.NewRequest("GET", "/api/v1/centre-activities/10/eligibility", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEngineHandler_GetSuitability(t *testing.T) {
	t.Run("unknown offering is not found", func(t *testing.T) {
		caRepo := &stubCentreActivityRepo{getByID: func(id int64) (*entities.CentreActivity, error) {
			return nil, apperrors.NewNotFoundError("centre activity not found")
		}}
		svc := services.NewSuitabilityService(caRepo, nil, nil)
		mux := newEngineMux(NewEngineHandler(nil, nil, svc))

		req := httptest.NewRequest("GET", "/api/v1/centre-activities/99/suitability?patient_id=patient-1", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
