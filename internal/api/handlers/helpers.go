package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	apperrors "github.com/carecentral/activity-service/pkg/errors"
)

// actorHeader carries the acting user's id, forwarded by the gateway after
// authentication. Mutations without it are stamped as "system".
const actorHeader = "X-Actor-Id"

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps application errors onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict, apperrors.ErrorTypeStaleState:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeConstraintViolation, apperrors.ErrorTypeInactiveActivity:
			respondWithError(w, http.StatusUnprocessableEntity, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Request failed")
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer")
	}
	return id, nil
}

// listFilterFromQuery reads the shared paging knobs.
func listFilterFromQuery(r *http.Request) repositories.ListFilter {
	q := r.URL.Query()
	filter := repositories.ListFilter{}
	filter.IncludeDeleted = q.Get("include_deleted") == "true"
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}
	return filter
}

func includeDeletedFromQuery(r *http.Request) bool {
	return r.URL.Query().Get("include_deleted") == "true"
}

func auditFromRequest(r *http.Request) entities.AuditInfo {
	actor := r.Header.Get(actorHeader)
	if actor == "" {
		actor = "system"
	}
	return entities.AuditInfo{ActorID: actor}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}
