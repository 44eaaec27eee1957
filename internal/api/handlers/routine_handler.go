package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/entities"
)

// RoutineHandler handles patient routine HTTP requests
type RoutineHandler struct {
	service *services.RoutineService
}

// NewRoutineHandler creates a new routine handler
func NewRoutineHandler(service *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{service: service}
}

// CreateRoutine handles POST /api/v1/routines
func (h *RoutineHandler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	var routine entities.Routine
	if err := decodeBody(r, &routine); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), &routine, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, routine)
}

// GetRoutine handles GET /api/v1/routines/{id}
func (h *RoutineHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	routine, err := h.service.Get(r.Context(), id, includeDeletedFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, routine)
}

// UpdateRoutine handles PUT /api/v1/routines/{id}
func (h *RoutineHandler) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	var routine entities.Routine
	if err := decodeBody(r, &routine); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	routine.ID = id

	if err := h.service.Update(r.Context(), &routine, auditFromRequest(r)); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, routine)
}

// DeleteRoutine handles DELETE /api/v1/routines/{id}
func (h *RoutineHandler) DeleteRoutine(w http.ResponseWriter, r *http.Request) {
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

// ListRoutines handles GET /api/v1/routines
// A patient_id query parameter narrows the list to one patient's routines.
func (h *RoutineHandler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)

	var routines []*entities.Routine
	var err error
	if patientID := r.URL.Query().Get("patient_id"); patientID != "" {
		routines, err = h.service.ListByPatient(r.Context(), patientID, filter)
	} else {
		routines, err = h.service.List(r.Context(), filter)
	}
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"routines": routines,
		"count":    len(routines),
	})
}

// GetRoutineOccurrences handles GET /api/v1/routines/{id}/occurrences?from=&to=
func (h *RoutineHandler) GetRoutineOccurrences(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	from, err := timeParam(r, "from")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	to, err := timeParam(r, "to")
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	occurrences, err := h.service.Occurrences(r.Context(), id, from, to)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"routine_id":  id,
		"occurrences": occurrences,
		"count":       len(occurrences),
	})
}
