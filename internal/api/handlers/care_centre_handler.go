package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// CareCentreHandler handles care centre HTTP requests
type CareCentreHandler struct {
	service *services.CareCentreService
}

// NewCareCentreHandler creates a new care centre handler
func NewCareCentreHandler(service *services.CareCentreService) *CareCentreHandler {
	return &CareCentreHandler{service: service}
}

// CreateCareCentre handles POST /api/v1/care-centres
func (h *CareCentreHandler) CreateCareCentre(w http.ResponseWriter, r *http.Request) {
	var centre entities.CareCentre
	if err := decodeBody(r, &centre); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &centre, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, centre)
}

// GetCareCentre handles GET /api/v1/care-centres/{id}
func (h *CareCentreHandler) GetCareCentre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	centre, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, centre)
}

// UpdateCareCentre handles PUT /api/v1/care-centres/{id}
func (h *CareCentreHandler) UpdateCareCentre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var centre entities.CareCentre
	if err := decodeBody(r, &centre); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	centre.ID = id

	if err := h.service.Update(r.Context(), &centre, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, centre)
}

// DeleteCareCentre handles DELETE /api/v1/care-centres/{id}
func (h *CareCentreHandler) DeleteCareCentre(w http.ResponseWriter, r *http.Request) {
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

// ListCareCentres handles GET /api/v1/care-centres
func (h *CareCentreHandler) ListCareCentres(w http.ResponseWriter, r *http.Request) {
	centres, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"care_centres": centres,
		"count":        len(centres),
	})
}
