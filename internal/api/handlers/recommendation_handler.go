package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// RecommendationHandler handles doctor recommendation HTTP requests
type RecommendationHandler struct {
	service *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// CreateRecommendation handles POST /api/v1/centre-activity-recommendations
func (h *RecommendationHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var rec entities.CentreActivityRecommendation
	if err := decodeBody(r, &rec); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &rec, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, rec)
}

// GetRecommendation handles GET /api/v1/centre-activity-recommendations/{id}
func (h *RecommendationHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	rec, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rec)
}

// UpdateRecommendation handles PUT /api/v1/centre-activity-recommendations/{id}
func (h *RecommendationHandler) UpdateRecommendation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var rec entities.CentreActivityRecommendation
	if err := decodeBody(r, &rec); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	rec.ID = id

	if err := h.service.Update(r.Context(), &rec, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rec)
}

// DeleteRecommendation handles DELETE /api/v1/centre-activity-recommendations/{id}
func (h *RecommendationHandler) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
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

// ListRecommendations handles GET /api/v1/centre-activity-recommendations
func (h *RecommendationHandler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context(), listFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}
