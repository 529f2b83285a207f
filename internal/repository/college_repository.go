package repository

import (
	"context"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollegeRepository interface {
	List(ctx context.Context, search string) ([]model.College, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.College, error)
	GetByCode(ctx context.Context, code string) (*model.College, error)
	Create(ctx context.Context, college *model.College) error
	Update(ctx context.Context, college *model.College) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type collegeRepository struct {
	pool *pgxpool.Pool
}

func NewCollegeRepository(pool *pgxpool.Pool) CollegeRepository {
	return &collegeRepository{pool: pool}
}

const collegeColumns = `id, name, code, created_at, updated_at`

func scanCollege(row pgx.Row) (*model.College, error) {
	c := &model.College{}
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *collegeRepository) List(ctx context.Context, search string) ([]model.College, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+collegeColumns+` FROM colleges
		 WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := []model.College{}
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, err
		}
		colleges = append(colleges, *c)
	}
	return colleges, rows.Err()
}

func (r *collegeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.College, error) {
	return scanCollege(r.pool.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, id))
}

func (r *collegeRepository) GetByCode(ctx context.Context, code string) (*model.College, error) {
	return scanCollege(r.pool.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE code = $1`, code))
}

func (r *collegeRepository) Create(ctx context.Context, c *model.College) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO colleges (name, code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.Name, c.Code, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	return mapError(err)
}

func (r *collegeRepository) Update(ctx context.Context, c *model.College) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE colleges SET name = $1, code = $2, updated_at = $3 WHERE id = $4`,
		c.Name, c.Code, c.UpdatedAt, c.ID,
	))
}

func (r *collegeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM colleges WHERE id = $1`, id))
}
