package repository

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// TokenStore remembers logged-out tokens until they would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisTokenStore struct {
	rdb *redis.Client
}

// NewRedisTokenStore creates a TokenStore backed by Redis keys with TTL.
func NewRedisTokenStore(rdb *redis.Client) TokenStore {
	return &redisTokenStore{rdb: rdb}
}

func (s *redisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, config.CacheKey.RevokedTokenKey(jti), "1", ttl).Err()
}

func (s *redisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, config.CacheKey.RevokedTokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
