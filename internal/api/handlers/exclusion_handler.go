package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// ExclusionHandler handles patient exclusion HTTP requests
type ExclusionHandler struct {
	service *services.ExclusionService
}

// NewExclusionHandler creates a new exclusion handler
func NewExclusionHandler(service *services.ExclusionService) *ExclusionHandler {
	return &ExclusionHandler{service: service}
}

// CreateExclusion handles POST /api/v1/centre-activity-exclusions
func (h *ExclusionHandler) CreateExclusion(w http.ResponseWriter, r *http.Request) {
	var exclusion entities.CentreActivityExclusion
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

// GetExclusion handles GET /api/v1/centre-activity-exclusions/{id}
func (h *ExclusionHandler) GetExclusion(w http.ResponseWriter, r *http.Request) {
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

// UpdateExclusion handles PUT /api/v1/centre-activity-exclusions/{id}
func (h *ExclusionHandler) UpdateExclusion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var exclusion entities.CentreActivityExclusion
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

// DeleteExclusion handles DELETE /api/v1/centre-activity-exclusions/{id}
func (h *ExclusionHandler) DeleteExclusion(w http.ResponseWriter, r *http.Request) {
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

// ListExclusions handles GET /api/v1/centre-activity-exclusions
func (h *ExclusionHandler) ListExclusions(w http.ResponseWriter, r *http.Request) {
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
