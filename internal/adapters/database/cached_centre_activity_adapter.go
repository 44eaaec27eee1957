package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/domain/providers"
	"github.com/carecentral/activity-service/internal/domain/repositories"
	"github.com/carecentral/activity-service/internal/infrastructure/observability"
)

// centreActivityByIDTTL is the cache lifetime for a single row in seconds.
// Centre activity rows change rarely but gate every eligibility check.
const centreActivityByIDTTL = 300

// CachedCentreActivityAdapter wraps CentreActivityAdapter with caching for
// GetByID, the hot path of the eligibility engine. Lists always hit the
// database; they are admin-facing and must see writes immediately.
type CachedCentreActivityAdapter struct {
	adapter repositories.CentreActivityRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

var _ repositories.CentreActivityRepository = (*CachedCentreActivityAdapter)(nil)

// NewCachedCentreActivityAdapter creates a new cached centre activity adapter
func NewCachedCentreActivityAdapter(adapter repositories.CentreActivityRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.CentreActivityRepository {
	return &CachedCentreActivityAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

func centreActivityCacheKey(id int64) string {
	return fmt.Sprintf("centre_activity:%d", id)
}

// GetByID retrieves a centre activity by id with caching. Lookups that
// include deleted rows bypass the cache; only live rows are cached.
func (a *CachedCentreActivityAdapter) GetByID(ctx context.Context, id int64, includeDeleted bool) (*entities.CentreActivity, error) {
	if includeDeleted {
		return a.adapter.GetByID(ctx, id, includeDeleted)
	}

	cacheKey := centreActivityCacheKey(id)
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var ca entities.CentreActivity
		if err := json.Unmarshal(cached, &ca); err == nil {
			if a.metrics != nil {
				observability.RecordCacheHit(ctx, a.metrics, "centre_activity")
			}
			return &ca, nil
		}
		log.Printf("Failed to unmarshal cached centre activity %d: %v", id, err)
	}
	if a.metrics != nil {
		observability.RecordCacheMiss(ctx, a.metrics, "centre_activity")
	}

	ca, err := a.adapter.GetByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if data, err := json.Marshal(ca); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, centreActivityByIDTTL); err != nil {
				log.Printf("Failed to cache centre activity %d: %v", id, err)
			}
		}
	}()

	return ca, nil
}

// Create delegates to the base adapter
func (a *CachedCentreActivityAdapter) Create(ctx context.Context, ca *entities.CentreActivity) error {
	return a.adapter.Create(ctx, ca)
}

// Update delegates and invalidates the cached row
func (a *CachedCentreActivityAdapter) Update(ctx context.Context, ca *entities.CentreActivity) error {
	if err := a.adapter.Update(ctx, ca); err != nil {
		return err
	}
	a.invalidate(ctx, ca.ID)
	return nil
}

// SoftDelete delegates and invalidates the cached row
func (a *CachedCentreActivityAdapter) SoftDelete(ctx context.Context, id int64, audit entities.AuditInfo) error {
	if err := a.adapter.SoftDelete(ctx, id, audit); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

// List delegates to the base adapter
func (a *CachedCentreActivityAdapter) List(ctx context.Context, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return a.adapter.List(ctx, filter)
}

// ListByActivity delegates to the base adapter
func (a *CachedCentreActivityAdapter) ListByActivity(ctx context.Context, activityID int64, filter repositories.ListFilter) ([]*entities.CentreActivity, error) {
	return a.adapter.ListByActivity(ctx, activityID, filter)
}

func (a *CachedCentreActivityAdapter) invalidate(ctx context.Context, id int64) {
	if err := a.cache.Delete(ctx, centreActivityCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate cached centre activity %d: %v", id, err)
	}
}
