package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/grayfactory/superbowmvp-v4/internal/entity"
	"github.com/grayfactory/superbowmvp-v4/internal/pkg/logger"
	"github.com/grayfactory/superbowmvp-v4/internal/repository/contract"
)

const (
	contextsCacheKey = "catalog:contexts"
)

// CachedContextRepository decorates a ContextRepository with a two-level
// cache: in-process (go-cache) first, then Redis so multiple instances share
// one catalog load. The occasion catalog is read on every turn and changes
// rarely, so both levels are best-effort — any cache failure falls through to
// the database.
type CachedContextRepository struct {
	inner contract.ContextRepository
	mem   *gocache.Cache
	rdb   *redis.Client
	ttl   time.Duration
	log   logger.ILogger
}

func NewCachedContextRepository(
	inner contract.ContextRepository,
	rdb *redis.Client,
	ttl time.Duration,
	log logger.ILogger,
) contract.ContextRepository {
	return &CachedContextRepository{
		inner: inner,
		mem:   gocache.New(ttl, 2*ttl),
		rdb:   rdb,
		ttl:   ttl,
		log:   log,
	}
}

func (r *CachedContextRepository) Create(ctx context.Context, occasion *entity.Context) error {
	if err := r.inner.Create(ctx, occasion); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedContextRepository) FindAll(ctx context.Context) ([]*entity.Context, error) {
	if x, found := r.mem.Get(contextsCacheKey); found {
		return x.([]*entity.Context), nil
	}

	if contexts, ok := r.fromRedis(ctx); ok {
		r.mem.Set(contextsCacheKey, contexts, gocache.DefaultExpiration)
		return contexts, nil
	}

	contexts, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	r.mem.Set(contextsCacheKey, contexts, gocache.DefaultExpiration)
	r.toRedis(ctx, contexts)
	return contexts, nil
}

func (r *CachedContextRepository) FindByID(ctx context.Context, contextID string) (*entity.Context, error) {
	// The catalog is small; serve lookups from the cached full set.
	contexts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range contexts {
		if c.ContextID == contextID {
			return c, nil
		}
	}
	return r.inner.FindByID(ctx, contextID)
}

func (r *CachedContextRepository) fromRedis(ctx context.Context) ([]*entity.Context, bool) {
	if r.rdb == nil {
		return nil, false
	}
	raw, err := r.rdb.Get(ctx, contextsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("context-cache", "redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}
	var contexts []*entity.Context
	if err := json.Unmarshal(raw, &contexts); err != nil {
		r.log.Warn("context-cache", "corrupt cache entry, ignoring", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	return contexts, true
}

func (r *CachedContextRepository) toRedis(ctx context.Context, contexts []*entity.Context) {
	if r.rdb == nil {
		return
	}
	raw, err := json.Marshal(contexts)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, contextsCacheKey, raw, r.ttl).Err(); err != nil {
		r.log.Warn("context-cache", "redis set failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *CachedContextRepository) invalidate(ctx context.Context) {
	r.mem.Delete(contextsCacheKey)
	if r.rdb != nil {
		if err := r.rdb.Del(ctx, contextsCacheKey).Err(); err != nil {
			r.log.Warn("context-cache", "redis del failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
