package repository

import (
	"context"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository aggregates counters for the college dashboard.
type StatsRepository interface {
	CollegeCounts(ctx context.Context, collegeID uuid.UUID) (*model.CollegeStats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

// CollegeCounts counts the records whose college snapshot points at collegeID.
func (r *statsRepository) CollegeCounts(ctx context.Context, collegeID uuid.UUID) (*model.CollegeStats, error) {
	st := &model.CollegeStats{CollegeID: collegeID}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM departments WHERE college_id = $1),
			(SELECT COUNT(*) FROM programs WHERE college_id = $1),
			(SELECT COUNT(*) FROM faculties WHERE college_id = $1),
			(SELECT COUNT(*) FROM students WHERE college_id = $1),
			(SELECT COUNT(*) FROM subjects WHERE college_id = $1)`,
		collegeID,
	).Scan(&st.Departments, &st.Programs, &st.Faculty, &st.Students, &st.Subjects)
	if err != nil {
		return nil, err
	}
	return st, nil
}
