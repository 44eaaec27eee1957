package routes

import (
	"net/http"

	"github.com/carecentral/activity-service/internal/api/handlers"
	"github.com/carecentral/activity-service/internal/api/middleware"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	activityHandler       *handlers.ActivityHandler
	careCentreHandler     *handlers.CareCentreHandler
	centreActivityHandler *handlers.CentreActivityHandler
	availabilityHandler   *handlers.AvailabilityHandler
	exclusionHandler      *handlers.ExclusionHandler
	recommendationHandler *handlers.RecommendationHandler
	preferenceHandler     *handlers.PreferenceHandler
	adhocHandler          *handlers.AdhocHandler
	routineHandler        *handlers.RoutineHandler
	routineExclHandler    *handlers.RoutineExclusionHandler
	activityExclHandler   *handlers.ActivityExclusionHandler
	engineHandler         *handlers.EngineHandler
	healthHandler         *handlers.HealthHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	activityHandler *handlers.ActivityHandler,
	careCentreHandler *handlers.CareCentreHandler,
	centreActivityHandler *handlers.CentreActivityHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	exclusionHandler *handlers.ExclusionHandler,
	recommendationHandler *handlers.RecommendationHandler,
	preferenceHandler *handlers.PreferenceHandler,
	adhocHandler *handlers.AdhocHandler,
	routineHandler *handlers.RoutineHandler,
	routineExclHandler *handlers.RoutineExclusionHandler,
	activityExclHandler *handlers.ActivityExclusionHandler,
	engineHandler *handlers.EngineHandler,
	healthHandler *handlers.HealthHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		activityHandler:       activityHandler,
		careCentreHandler:     careCentreHandler,
		centreActivityHandler: centreActivityHandler,
		availabilityHandler:   availabilityHandler,
		exclusionHandler:      exclusionHandler,
		recommendationHandler: recommendationHandler,
		preferenceHandler:     preferenceHandler,
		adhocHandler:          adhocHandler,
		routineHandler:        routineHandler,
		routineExclHandler:    routineExclHandler,
		activityExclHandler:   activityExclHandler,
		engineHandler:         engineHandler,
		healthHandler:         healthHandler,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health endpoints
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /ready", r.healthHandler.Ready)

	// Activity template endpoints
	r.mux.HandleFunc("POST /api/v1/activities", r.activityHandler.CreateActivity)
	r.mux.HandleFunc("GET /api/v1/activities", r.activityHandler.ListActivities)
	r.mux.HandleFunc("GET /api/v1/activities/{id}", r.activityHandler.GetActivity)
	r.mux.HandleFunc("PUT /api/v1/activities/{id}", r.activityHandler.UpdateActivity)
	r.mux.HandleFunc("DELETE /api/v1/activities/{id}", r.activityHandler.DeleteActivity)

	// Care centre endpoints
	r.mux.HandleFunc("POST /api/v1/care-centres", r.careCentreHandler.CreateCareCentre)
	r.mux.HandleFunc("GET /api/v1/care-centres", r.careCentreHandler.ListCareCentres)
	r.mux.HandleFunc("GET /api/v1/care-centres/{id}", r.careCentreHandler.GetCareCentre)
	r.mux.HandleFunc("PUT /api/v1/care-centres/{id}", r.careCentreHandler.UpdateCareCentre)
	r.mux.HandleFunc("DELETE /api/v1/care-centres/{id}", r.careCentreHandler.DeleteCareCentre)

	// Centre activity endpoints
	r.mux.HandleFunc("POST /api/v1/centre-activities", r.centreActivityHandler.CreateCentreActivity)
	r.mux.HandleFunc("GET /api/v1/centre-activities", r.centreActivityHandler.ListCentreActivities)
	r.mux.HandleFunc("GET /api/v1/centre-activities/{id}", r.centreActivityHandler.GetCentreActivity)
	r.mux.HandleFunc("PUT /api/v1/centre-activities/{id}", r.centreActivityHandler.UpdateCentreActivity)
	r.mux.HandleFunc("DELETE /api/v1/centre-activities/{id}", r.centreActivityHandler.DeleteCentreActivity)

	// Engine queries
	r.mux.HandleFunc("GET /api/v1/centre-activities/{id}/schedule", r.engineHandler.GetSchedule)
	r.mux.HandleFunc("GET /api/v1/centre-activities/{id}/eligibility", r.engineHandler.GetEligibility)
	r.mux.HandleFunc("GET /api/v1/centre-activities/{id}/suitability", r.engineHandler.GetSuitability)

	// Availability window endpoints
	r.mux.HandleFunc("POST /api/v1/centre-activity-availabilities", r.availabilityHandler.CreateAvailability)
	r.mux.HandleFunc("GET /api/v1/centre-activity-availabilities", r.availabilityHandler.ListAvailabilities)
	r.mux.HandleFunc("GET /api/v1/centre-activity-availabilities/{id}", r.availabilityHandler.GetAvailability)
	r.mux.HandleFunc("PUT /api/v1/centre-activity-availabilities/{id}", r.availabilityHandler.UpdateAvailability)
	r.mux.HandleFunc("DELETE /api/v1/centre-activity-availabilities/{id}", r.availabilityHandler.DeleteAvailability)

	// Exclusion endpoints
	r.mux.HandleFunc("POST /api/v1/centre-activity-exclusions", r.exclusionHandler.CreateExclusion)
	r.mux.HandleFunc("GET /api/v1/centre-activity-exclusions", r.exclusionHandler.ListExclusions)
	r.mux.HandleFunc("GET /api/v1/centre-activity-exclusions/{id}", r.exclusionHandler.GetExclusion)
	r.mux.HandleFunc("PUT /api/v1/centre-activity-exclusions/{id}", r.exclusionHandler.UpdateExclusion)
	r.mux.HandleFunc("DELETE /api/v1/centre-activity-exclusions/{id}", r.exclusionHandler.DeleteExclusion)

	// Recommendation endpoints
	r.mux.HandleFunc("POST /api/v1/centre-activity-recommendations", r.recommendationHandler.CreateRecommendation)
	r.mux.HandleFunc("GET /api/v1/centre-activity-recommendations", r.recommendationHandler.ListRecommendations)
	r.mux.HandleFunc("GET /api/v1/centre-activity-recommendations/{id}", r.recommendationHandler.GetRecommendation)
	r.mux.HandleFunc("PUT /api/v1/centre-activity-recommendations/{id}", r.recommendationHandler.UpdateRecommendation)
	r.mux.HandleFunc("DELETE /api/v1/centre-activity-recommendations/{id}", r.recommendationHandler.DeleteRecommendation)

	// Preference endpoints
	r.mux.HandleFunc("POST /api/v1/centre-activity-preferences", r.preferenceHandler.CreatePreference)
	r.mux.HandleFunc("GET /api/v1/centre-activity-preferences", r.preferenceHandler.ListPreferences)
	r.mux.HandleFunc("GET /api/v1/centre-activity-preferences/{id}", r.preferenceHandler.GetPreference)
	r.mux.HandleFunc("PUT /api/v1/centre-activity-preferences/{id}", r.preferenceHandler.UpdatePreference)
	r.mux.HandleFunc("DELETE /api/v1/centre-activity-preferences/{id}", r.preferenceHandler.DeletePreference)

	// Substitution endpoints
	r.mux.HandleFunc("POST /api/v1/adhocs", r.adhocHandler.CreateAdhoc)
	r.mux.HandleFunc("GET /api/v1/adhocs", r.adhocHandler.ListAdhocs)
	r.mux.HandleFunc("GET /api/v1/adhocs/{id}", r.adhocHandler.GetAdhoc)
	r.mux.HandleFunc("PUT /api/v1/adhocs/{id}", r.adhocHandler.UpdateAdhoc)
	r.mux.HandleFunc("DELETE /api/v1/adhocs/{id}", r.adhocHandler.DeleteAdhoc)
	r.mux.HandleFunc("POST /api/v1/adhocs/{id}/approve", r.adhocHandler.ApproveAdhoc)
	r.mux.HandleFunc("POST /api/v1/adhocs/{id}/reject", r.adhocHandler.RejectAdhoc)

	// Routine endpoints
	r.mux.HandleFunc("POST /api/v1/routines", r.routineHandler.CreateRoutine)
	r.mux.HandleFunc("GET /api/v1/routines", r.routineHandler.ListRoutines)
	r.mux.HandleFunc("GET /api/v1/routines/{id}", r.routineHandler.GetRoutine)
	r.mux.HandleFunc("PUT /api/v1/routines/{id}", r.routineHandler.UpdateRoutine)
	r.mux.HandleFunc("DELETE /api/v1/routines/{id}", r.routineHandler.DeleteRoutine)
	r.mux.HandleFunc("GET /api/v1/routines/{id}/occurrences", r.routineHandler.GetRoutineOccurrences)

	// Routine suspension endpoints
	r.mux.HandleFunc("POST /api/v1/routine-exclusions", r.routineExclHandler.CreateRoutineExclusion)
	r.mux.HandleFunc("GET /api/v1/routine-exclusions", r.routineExclHandler.ListRoutineExclusions)
	r.mux.HandleFunc("GET /api/v1/routine-exclusions/{id}", r.routineExclHandler.GetRoutineExclusion)
	r.mux.HandleFunc("PUT /api/v1/routine-exclusions/{id}", r.routineExclHandler.UpdateRoutineExclusion)
	r.mux.HandleFunc("DELETE /api/v1/routine-exclusions/{id}", r.routineExclHandler.DeleteRoutineExclusion)

	// Activity-level exclusion endpoints
	r.mux.HandleFunc("POST /api/v1/activity-exclusions", r.activityExclHandler.CreateActivityExclusion)
	r.mux.HandleFunc("GET /api/v1/activity-exclusions", r.activityExclHandler.ListActivityExclusions)
	r.mux.HandleFunc("GET /api/v1/activity-exclusions/{id}", r.activityExclHandler.GetActivityExclusion)
	r.mux.HandleFunc("PUT /api/v1/activity-exclusions/{id}", r.activityExclHandler.UpdateActivityExclusion)
	r.mux.HandleFunc("DELETE /api/v1/activity-exclusions/{id}", r.activityExclHandler.DeleteActivityExclusion)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
