package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatsCache holds recently computed college counters.
// Get returns ErrNotFound on a cache miss.
type StatsCache interface {
	Get(ctx context.Context, collegeID uuid.UUID) (*model.CollegeStats, error)
	Set(ctx context.Context, stats *model.CollegeStats, ttl time.Duration) error
	Invalidate(ctx context.Context, collegeID uuid.UUID) error
}

type redisStatsCache struct {
	rdb *redis.Client
}

// NewRedisStatsCache creates a StatsCache storing JSON blobs in Redis.
func NewRedisStatsCache(rdb *redis.Client) StatsCache {
	return &redisStatsCache{rdb: rdb}
}

func (c *redisStatsCache) Get(ctx context.Context, collegeID uuid.UUID) (*model.CollegeStats, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.CollegeStatsKey(collegeID.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st := &model.CollegeStats{}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (c *redisStatsCache) Set(ctx context.Context, st *model.CollegeStats, ttl time.Duration) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, config.CacheKey.CollegeStatsKey(st.CollegeID.String()), raw, ttl).Err()
}

func (c *redisStatsCache) Invalidate(ctx context.Context, collegeID uuid.UUID) error {
	return c.rdb.Del(ctx, config.CacheKey.CollegeStatsKey(collegeID.String())).Err()
}
