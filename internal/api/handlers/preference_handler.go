package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// PreferenceHandler handles patient preference HTTP requests
type PreferenceHandler struct {
	service *services.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(service *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// CreatePreference handles POST /api/v1/centre-activity-preferences
func (h *PreferenceHandler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var pref entities.CentreActivityPreference
	if err := decodeBody(r, &pref); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &pref, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, pref)
}

// GetPreference handles GET /api/v1/centre-activity-preferences/{id}
func (h *PreferenceHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	pref, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pref)
}

// UpdatePreference handles PUT /api/v1/centre-activity-preferences/{id}
func (h *PreferenceHandler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var pref entities.CentreActivityPreference
	if err := decodeBody(r, &pref); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	pref.ID = id

	if err := h.service.Update(r.Context(), &pref, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pref)
}

// DeletePreference handles DELETE /api/v1/centre-activity-preferences/{id}
func (h *PreferenceHandler) DeletePreference(w http.ResponseWriter, r *http.Request) {
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

// ListPreferences handles GET /api/v1/centre-activity-preferences
func (h *PreferenceHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
		"count":       len(prefs),
	})
}
