package handlers

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	redisclient "github.com/carecentral/activity-service/internal/infrastructure/clients/redis"
)

// HealthHandler reports process liveness and dependency readiness
type HealthHandler struct {
	postgres *postgres.Client
	redis    *redisclient.Client
}

// NewHealthHandler creates a new health handler. The redis client may be nil
// when the service runs without caching and eventing.
func NewHealthHandler(pg *postgres.Client, redis *redisclient.Client) *HealthHandler {
	return &HealthHandler{postgres: pg, redis: redis}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if err := h.postgres.Ping(r.Context()); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Client().Ping(r.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	respondWithJSON(w, status, checks)
}
