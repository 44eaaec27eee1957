package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// ActivityHandler handles activity template HTTP requests
type ActivityHandler struct {
	service *services.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// CreateActivity handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity entities.Activity
	if err := decodeBody(r, &activity); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &activity, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, activity)
}

// GetActivity handles GET /api/v1/activities/{id}
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	activity, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, activity)
}

// UpdateActivity handles PUT /api/v1/activities/{id}
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var activity entities.Activity
	if err := decodeBody(r, &activity); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	activity.ID = id

	if err := h.service.Update(r.Context(), &activity, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, activity)
}

// DeleteActivity handles DELETE /api/v1/activities/{id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
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

// ListActivities handles GET /api/v1/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
		"count":      len(activities),
	})
}
