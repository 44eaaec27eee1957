package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carecentral/activity-service/internal/adapters/cache"
	"github.com/carecentral/activity-service/internal/adapters/database"
	"github.com/carecentral/activity-service/internal/adapters/events"
	"github.com/carecentral/activity-service/internal/adapters/schedule"
	"github.com/carecentral/activity-service/internal/api/handlers"
	"github.com/carecentral/activity-service/internal/api/routes"
	"github.com/carecentral/activity-service/internal/application/services"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/redis"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
	"github.com/carecentral/activity-service/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; the service degrades to uncached, event-less
	// operation when Redis is unavailable
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	activityAdapter := database.NewActivityAdapter(pgClient)
	careCentreAdapter := database.NewCareCentreAdapter(pgClient)
	availabilityAdapter := database.NewAvailabilityAdapter(pgClient)
	exclusionAdapter := database.NewExclusionAdapter(pgClient)
	recommendationAdapter := database.NewRecommendationAdapter(pgClient)
	preferenceAdapter := database.NewPreferenceAdapter(pgClient)
	adhocAdapter := database.NewAdhocAdapter(pgClient)
	routineAdapter := database.NewRoutineAdapter(pgClient)
	routineExclusionAdapter := database.NewRoutineExclusionAdapter(pgClient)
	activityExclusionAdapter := database.NewActivityExclusionAdapter(pgClient)

	var centreActivityAdapter repositories.CentreActivityRepository = database.NewCentreActivityAdapter(pgClient)
	if cacheProvider != nil {
		centreActivityAdapter = database.NewCachedCentreActivityAdapter(centreActivityAdapter, cacheProvider, metrics)
		log.Println("Centre activity adapter wrapped with caching layer")
	} else {
		log.Println("Centre activity adapter running without cache (Redis unavailable)")
	}

	slotConfigProvider := schedule.NewDBProvider(pgClient)

	// Initialize services
	activityService := services.NewActivityService(activityAdapter, eventBus)
	careCentreService := services.NewCareCentreService(careCentreAdapter, eventBus)
	centreActivityService := services.NewCentreActivityService(centreActivityAdapter, activityAdapter, eventBus)
	availabilityService := services.NewAvailabilityService(availabilityAdapter, centreActivityAdapter, eventBus)
	exclusionService := services.NewExclusionService(exclusionAdapter, centreActivityAdapter, eventBus)
	recommendationService := services.NewRecommendationService(recommendationAdapter, centreActivityAdapter, eventBus)
	preferenceService := services.NewPreferenceService(preferenceAdapter, centreActivityAdapter, eventBus)
	adhocService := services.NewAdhocService(adhocAdapter, centreActivityAdapter, eventBus)
	routineService := services.NewRoutineService(routineAdapter, activityAdapter, routineExclusionAdapter, eventBus)
	routineExclusionService := services.NewRoutineExclusionService(routineExclusionAdapter, routineAdapter, eventBus)
	activityExclusionService := services.NewActivityExclusionService(activityExclusionAdapter, activityAdapter, eventBus)

	scheduleService := services.NewScheduleService(centreActivityAdapter, availabilityAdapter, slotConfigProvider, metrics)
	eligibilityService := services.NewEligibilityService(centreActivityAdapter, exclusionAdapter, adhocAdapter, metrics)
	suitabilityService := services.NewSuitabilityService(centreActivityAdapter, recommendationAdapter, preferenceAdapter)

	// Initialize handlers
	activityHandler := handlers.NewActivityHandler(activityService)
	careCentreHandler := handlers.NewCareCentreHandler(careCentreService)
	centreActivityHandler := handlers.NewCentreActivityHandler(centreActivityService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	exclusionHandler := handlers.NewExclusionHandler(exclusionService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	adhocHandler := handlers.NewAdhocHandler(adhocService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	routineExclusionHandler := handlers.NewRoutineExclusionHandler(routineExclusionService)
	activityExclusionHandler := handlers.NewActivityExclusionHandler(activityExclusionService)
	engineHandler := handlers.NewEngineHandler(scheduleService, eligibilityService, suitabilityService)
	healthHandler := handlers.NewHealthHandler(pgClient, redisClient)

	// Set up router
	router := routes.NewRouter(
		activityHandler,
		careCentreHandler,
		centreActivityHandler,
		availabilityHandler,
		exclusionHandler,
		recommendationHandler,
		preferenceHandler,
		adhocHandler,
		routineHandler,
		routineExclusionHandler,
		activityExclusionHandler,
		engineHandler,
		healthHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
