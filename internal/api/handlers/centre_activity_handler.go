package handlers

import (
	"net/http"
	"strconv"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// CentreActivityHandler handles centre activity HTTP requests
type CentreActivityHandler struct {
	service *services.CentreActivityService
}

// NewCentreActivityHandler creates a new centre activity handler
func NewCentreActivityHandler(service *services.CentreActivityService) *CentreActivityHandler {
	return &CentreActivityHandler{service: service}
}

// CreateCentreActivity handles POST /api/v1/centre-activities
func (h *CentreActivityHandler) CreateCentreActivity(w http.ResponseWriter, r *http.Request) {
	var ca entities.CentreActivity
	if err := decodeBody(r, &ca); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &ca, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, ca)
}

// GetCentreActivity handles GET /api/v1/centre-activities/{id}
func (h *CentreActivityHandler) GetCentreActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	ca, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ca)
}

// UpdateCentreActivity handles PUT /api/v1/centre-activities/{id}
func (h *CentreActivityHandler) UpdateCentreActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var ca entities.CentreActivity
	if err := decodeBody(r, &ca); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	ca.ID = id

	if err := h.service.Update(r.Context(), &ca, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ca)
}

// DeleteCentreActivity handles DELETE /api/v1/centre-activities/{id}
func (h *CentreActivityHandler) DeleteCentreActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCentreActivities handles GET /api/v1/centre-activities
// An activity_id query parameter narrows the list to one template's offerings.
func (h *CentreActivityHandler) ListCentreActivities(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)

	var cas []*entities.CentreActivity
	var err error
	if raw := r.URL.Query().Get("activity_id"); raw != "" {
		activityID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || activityID <= 0 {
			respondWithError(w, http.StatusBadRequest, "activity_id must be a positive integer")
			return
		}
		cas, err = h.service.ListByActivity(r.Context(), activityID, filter)
	} else {
		cas, err = h.service.List(r.Context(), filter)
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"centre_activities": cas,
		"count":             len(cas),
	})
}
