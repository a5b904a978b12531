package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/application/reconcile"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

// PortfolioCache keeps the merged public portfolio in redis so the
// public read path skips Postgres and the reconcile pass on hot reads.
// Entries are invalidated on every content mutation.
type PortfolioCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewPortfolioCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *PortfolioCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PortfolioCache{rdb: rdb, ttl: ttl, logger: log}
}

func cacheKey(ownerID uuid.UUID) string {
	return "portfolio:merged:" + ownerID.String()
}

func (c *PortfolioCache) Get(ctx context.Context, ownerID uuid.UUID) (*reconcile.State, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(ownerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("portfolio cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var state reconcile.State
	if err := json.Unmarshal(raw, &state); err != nil {
		c.logger.Warn("portfolio cache entry is corrupt, dropping it", zap.Error(err))
		c.Invalidate(ctx, ownerID)
		return nil, false
	}
	return &state, true
}

func (c *PortfolioCache) Set(ctx context.Context, ownerID uuid.UUID, state *reconcile.State) {
	raw, err := json.Marshal(state)
	if err != nil {
		c.logger.Warn("cannot marshal portfolio state for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(ownerID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("portfolio cache write failed", zap.Error(err))
	}
}

func (c *PortfolioCache) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(ownerID)).Err(); err != nil {
		c.logger.Warn("portfolio cache invalidation failed", zap.Error(err))
	}
}
