package handlers

import (
	"net/http"
	"time"

	"github.com/carecentral/activity-service/internal/application/services"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// EngineHandler exposes the scheduling engine queries: slot resolution,
// eligibility checks and suitability scores for a centre activity.
type EngineHandler struct {
	schedule    *services.ScheduleService
	eligibility *services.EligibilityService
	suitability *services.SuitabilityService
}

// NewEngineHandler creates a new engine handler
func NewEngineHandler(
	schedule *services.ScheduleService,
	eligibility *services.EligibilityService,
	suitability *services.SuitabilityService,
) *EngineHandler {
	return &EngineHandler{
		schedule:    schedule,
		eligibility: eligibility,
		suitability: suitability,
	}
}

// GetSchedule handles GET /api/v1/centre-activities/{id}/schedule?from=&to=
func (h *EngineHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	from, err := timeParam(r, "from")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	to, err := timeParam(r, "to")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	slots, err := h.schedule.ResolveSchedule(r.Context(), id, from, to)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"centre_activity_id": id,
		"slots":              slots,
		"count":              len(slots),
	})
}

// GetEligibility handles GET /api/v1/centre-activities/{id}/eligibility?patient_id=&at=
func (h *EngineHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	patientID := r.URL.Query().Get("patient_id")
	at, err := timeParamOrNow(r, "at")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	decision, err := h.eligibility.CheckEligibility(r.Context(), patientID, id, at)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, decision)
}

// GetSuitability handles GET /api/v1/centre-activities/{id}/suitability?patient_id=
func (h *EngineHandler) GetSuitability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	score, err := h.suitability.Score(r.Context(), r.URL.Query().Get("patient_id"), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, score)
}

func timeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError(name + " is required (RFC 3339)")
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(name + " must be an RFC 3339 timestamp")
	}
	return t, nil
}

func timeParamOrNow(r *http.Request, name string) (time.Time, error) {
	if r.URL.Query().Get(name) == "" {
		return time.Now().UTC(), nil
	}
	return timeParam(r, name)
}
