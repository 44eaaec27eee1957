package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// AvailabilityHandler handles availability window HTTP requests
type AvailabilityHandler struct {
	service *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// CreateAvailability handles POST /api/v1/centre-activity-availabilities
func (h *AvailabilityHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	var availability entities.CentreActivityAvailability
	if err := decodeBody(r, &availability); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &availability, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, availability)
}

// GetAvailability handles GET /api/v1/centre-activity-availabilities/{id}
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	availability, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, availability)
}

// UpdateAvailability handles PUT /api/v1/centre-activity-availabilities/{id}
func (h *AvailabilityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var availability entities.CentreActivityAvailability
	if err := decodeBody(r, &availability); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	availability.ID = id

	if err := h.service.Update(r.Context(), &availability, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, availability)
}

// DeleteAvailability handles DELETE /api/v1/centre-activity-availabilities/{id}
func (h *AvailabilityHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
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

// ListAvailabilities handles GET /api/v1/centre-activity-availabilities
func (h *AvailabilityHandler) ListAvailabilities(w http.ResponseWriter, r *http.Request) {
	availabilities, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availabilities": availabilities,
		"count":          len(availabilities),
	})
}
