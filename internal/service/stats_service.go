package service

import (
	"context"
	"errors"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StatsService serves the per-college dashboard counters, read through a cache.
type StatsService struct {
	collegeRepo repository.CollegeRepository
	statsRepo   repository.StatsRepository
	cache       repository.StatsCache
	ttl         time.Duration
	log         zerolog.Logger
}

// NewStatsService creates a new StatsService. A nil cache or zero ttl disables caching.
func NewStatsService(
	collegeRepo repository.CollegeRepository,
	statsRepo repository.StatsRepository,
	cache repository.StatsCache,
	ttl time.Duration,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		collegeRepo: collegeRepo,
		statsRepo:   statsRepo,
		cache:       cache,
		ttl:         ttl,
		log:         log.With().Str("component", "stats_service").Logger(),
	}
}

// CollegeStats returns the counters for a college. Cache errors are logged and
// fall through to the database.
func (s *StatsService) CollegeStats(ctx context.Context, collegeID uuid.UUID) (*model.CollegeStats, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("College")
		}
		return nil, err
	}

	caching := s.cache != nil && s.ttl > 0
	if caching {
		st, err := s.cache.Get(ctx, collegeID)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Err(err).Str("college_id", collegeID.String()).Msg("Stats cache read failed")
		}
	}

	st, err := s.statsRepo.CollegeCounts(ctx, collegeID)
	if err != nil {
		return nil, err
	}

	if caching {
		if err := s.cache.Set(ctx, st, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("college_id", collegeID.String()).Msg("Stats cache write failed")
		}
	}
	return st, nil
}

// Forget drops the cached counters for a college so the next read recounts.
// A nil StatsService is a no-op.
func (s *StatsService) Forget(ctx context.Context, collegeID uuid.UUID) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, collegeID); err != nil {
		s.log.Warn().Err(err).Str("college_id", collegeID.String()).Msg("Stats cache invalidation failed")
	}
}
