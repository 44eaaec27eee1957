package handlers

import (
	"net/http"
	"strconv"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// RoutineExclusionHandler handles routine suspension HTTP requests
type RoutineExclusionHandler struct {
	service *services.RoutineExclusionService
}

// NewRoutineExclusionHandler creates a new routine exclusion handler
func NewRoutineExclusionHandler(service *services.RoutineExclusionService) *RoutineExclusionHandler {
	return &RoutineExclusionHandler{service: service}
}

// CreateRoutineExclusion handles POST /api/v1/routine-exclusions
func (h *RoutineExclusionHandler) CreateRoutineExclusion(w http.ResponseWriter, r *http.Request) {
	var exclusion entities.RoutineExclusion
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

// GetRoutineExclusion handles GET /api/v1/routine-exclusions/{id}
func (h *RoutineExclusionHandler) GetRoutineExclusion(w http.ResponseWriter, r *http.Request) {
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

// UpdateRoutineExclusion handles PUT /api/v1/routine-exclusions/{id}
func (h *RoutineExclusionHandler) UpdateRoutineExclusion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var exclusion entities.RoutineExclusion
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

// DeleteRoutineExclusion handles DELETE /api/v1/routine-exclusions/{id}
func (h *RoutineExclusionHandler) DeleteRoutineExclusion(w http.ResponseWriter, r *http.Request) {
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

// ListRoutineExclusions handles GET /api/v1/routine-exclusions
// A routine_id query parameter narrows the list to one routine's suspensions.
func (h *RoutineExclusionHandler) ListRoutineExclusions(w http.ResponseWriter, r *http.Request) {
	var exclusions []*entities.RoutineExclusion
	var err error
	if raw := r.URL.Query().Get("routine_id"); raw != "" {
		routineID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || routineID <= 0 {
			respondWithServiceError(w, r, apperrors.NewValidationError("routine_id must be a positive integer"))
			return
		}
		exclusions, err = h.service.ListForRoutine(r.Context(), routineID)
	} else {
		exclusions, err = h.service.List(r.Context(), listFilterFromQuery(r))
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"exclusions": exclusions,
		"count":      len(exclusions),
	})
}
