package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// AdhocHandler handles substitution request HTTP requests
type AdhocHandler struct {
	service *services.AdhocService
}

// NewAdhocHandler creates a new adhoc handler
func NewAdhocHandler(service *services.AdhocService) *AdhocHandler {
	return &AdhocHandler{service: service}
}

// decisionRequest carries the optimistic concurrency token for approve and
// reject: the modified_date the client last read.
type decisionRequest struct {
	ModifiedDate time.Time `json:"modified_date"`
}

// CreateAdhoc handles POST /api/v1/adhocs
func (h *AdhocHandler) CreateAdhoc(w http.ResponseWriter, r *http.Request) {
	var adhoc entities.Adhoc
	if err := decodeBody(r, &adhoc); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &adhoc, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, adhoc)
}

// GetAdhoc handles GET /api/v1/adhocs/{id}
func (h *AdhocHandler) GetAdhoc(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	adhoc, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, adhoc)
}

// UpdateAdhoc handles PUT /api/v1/adhocs/{id}
func (h *AdhocHandler) UpdateAdhoc(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var adhoc entities.Adhoc
	if err := decodeBody(r, &adhoc); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	adhoc.ID = id

	if err := h.service.Update(r.Context(), &adhoc, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, adhoc)
}

// DeleteAdhoc handles DELETE /api/v1/adhocs/{id}
func (h *AdhocHandler) DeleteAdhoc(w http.ResponseWriter, r *http.Request) {
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

// ListAdhocs handles GET /api/v1/adhocs
// A patient_id query parameter narrows the list to one patient's requests.
func (h *AdhocHandler) ListAdhocs(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)

	var adhocs []*entities.Adhoc
	var err error
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		adhocs, err = h.service.ListByPatient(r.Context(), patientID, filter)
	} else {
		adhocs, err = h.service.List(r.Context(), filter)
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"adhocs": adhocs,
		"count":  len(adhocs),
	})
}

// ApproveAdhoc handles POST /api/v1/adhocs/{id}/approve
func (h *AdhocHandler) ApproveAdhoc(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Approve)
}

// RejectAdhoc handles POST /api/v1/adhocs/{id}/reject
func (h *AdhocHandler) RejectAdhoc(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

func (h *AdhocHandler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64, expectedModified time.Time, audit entities.AuditInfo) (*entities.Adhoc, error)) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var req decisionRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	if req.ModifiedDate.IsZero() {
		respondWithServiceError(w, r, apperrors.NewValidationError("modified_date is required"))
		return
	}

	adhoc, err := fn(r.Context(), id, req.ModifiedDate, auditFromRequest(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, adhoc)
}
