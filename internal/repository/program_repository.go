package repository

import (
	"context"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgramRepository interface {
	ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) ([]model.Program, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Program, error)
	GetByCode(ctx context.Context, collegeID uuid.UUID, code string) (*model.Program, error)
	Create(ctx context.Context, program *model.Program) error
	Update(ctx context.Context, program *model.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type programRepository struct {
	pool *pgxpool.Pool
}

func NewProgramRepository(pool *pgxpool.Pool) ProgramRepository {
	return &programRepository{pool: pool}
}

const programSelect = `
	SELECT p.id, p.name, p.code, p.duration, p.description, p.college_id, p.created_at, p.updated_at,
	       c.id, c.name, c.code
	FROM programs p
	LEFT JOIN colleges c ON c.id = p.college_id`

func scanProgram(row pgx.Row) (*model.Program, error) {
	p := &model.Program{}
	var cID *uuid.UUID
	var cName, cCode *string
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Duration, &p.Description, &p.CollegeID, &p.CreatedAt, &p.UpdatedAt,
		&cID, &cName, &cCode)
	if err != nil {
		return nil, mapError(err)
	}
	p.College = collegeRef(cID, cName, cCode)
	return p, nil
}

func (r *programRepository) ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) ([]model.Program, error) {
	rows, err := r.pool.Query(ctx, programSelect+`
		WHERE p.college_id = $1
		  AND ($2 = '' OR p.name ILIKE '%' || $2 || '%' OR p.code ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC`, collegeID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []model.Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

func (r *programRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	return scanProgram(r.pool.QueryRow(ctx, programSelect+` WHERE p.id = $1`, id))
}

func (r *programRepository) GetByCode(ctx context.Context, collegeID uuid.UUID, code string) (*model.Program, error) {
	return scanProgram(r.pool.QueryRow(ctx, programSelect+` WHERE p.college_id = $1 AND p.code = $2`, collegeID, code))
}

func (r *programRepository) Create(ctx context.Context, p *model.Program) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO programs (name, code, duration, description, college_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.Name, p.Code, p.Duration, p.Description, p.CollegeID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return mapError(err)
}

func (r *programRepository) Update(ctx context.Context, p *model.Program) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE programs
		 SET name = $1, code = $2, duration = $3, description = $4, updated_at = $5
		 WHERE id = $6`,
		p.Name, p.Code, p.Duration, p.Description, p.UpdatedAt, p.ID,
	))
}

func (r *programRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id))
}
