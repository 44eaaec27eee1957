package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// ActivityExclusionHandler handles activity-level exclusion HTTP requests
type ActivityExclusionHandler struct {
	service *services.ActivityExclusionService
}

// NewActivityExclusionHandler creates a new activity exclusion handler
func NewActivityExclusionHandler(service *services.ActivityExclusionService) *ActivityExclusionHandler {
	return &ActivityExclusionHandler{service: service}
}

// CreateActivityExclusion handles POST /api/v1/activity-exclusions
func (h *ActivityExclusionHandler) CreateActivityExclusion(w http.ResponseWriter, r *http.Request) {
	var exclusion entities.ActivityExclusion
	if err := decodeBody(r, &exclusion); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &exclusion, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, exclusion)
}

// GetActivityExclusion handles GET /api/v1/activity-exclusions/{id}
func (h *ActivityExclusionHandler) GetActivityExclusion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	exclusion, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exclusion)
}

// UpdateActivityExclusion handles PUT /api/v1/activity-exclusions/{id}
func (h *ActivityExclusionHandler) UpdateActivityExclusion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var exclusion entities.ActivityExclusion
	if err := decodeBody(r, &exclusion); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	exclusion.ID = id

	if err := h.service.Update(r.Context(), &exclusion, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exclusion)
}

// DeleteActivityExclusion handles DELETE /api/v1/activity-exclusions/{id}
func (h *ActivityExclusionHandler) DeleteActivityExclusion(w http.ResponseWriter, r *http.Request) {
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

// ListActivityExclusions handles GET /api/v1/activity-exclusions
func (h *ActivityExclusionHandler) ListActivityExclusions(w http.ResponseWriter, r *http.Request) {
	exclusions, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"exclusions": exclusions,
		"count":      len(exclusions),
	})
}
