package repository

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DepartmentRepository interface {
	ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) ([]model.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	GetByCode(ctx context.Context, collegeID uuid.UUID, code string) (*model.Department, error)
	Create(ctx context.Context, dept *model.Department) error
	Update(ctx context.Context, dept *model.Department) error
	ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

// Colleges are joined rather than required: a deleted college leaves its
// departments in place with a null populated college.
const departmentSelect = `
	SELECT d.id, d.name, d.code, d.description, d.college_id, d.is_active, d.created_at, d.updated_at,
	       c.id, c.name, c.code
	FROM departments d
	LEFT JOIN colleges c ON c.id = d.college_id`

func scanDepartment(row pgx.Row) (*model.Department, error) {
	d := &model.Department{}
	var cID *uuid.UUID
	var cName, cCode *string
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.CollegeID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		&cID, &cName, &cCode)
	if err != nil {
		return nil, mapError(err)
	}
	d.College = collegeRef(cID, cName, cCode)
	return d, nil
}

func (r *departmentRepository) ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx, departmentSelect+`
		WHERE d.college_id = $1
		  AND ($2 = '' OR d.name ILIKE '%' || $2 || '%' OR d.code ILIKE '%' || $2 || '%')
		ORDER BY d.created_at DESC`, collegeID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	depts := []model.Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		depts = append(depts, *d)
	}
	return depts, rows.Err()
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx, departmentSelect+` WHERE d.id = $1`, id))
}

func (r *departmentRepository) GetByCode(ctx context.Context, collegeID uuid.UUID, code string) (*model.Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx, departmentSelect+` WHERE d.college_id = $1 AND d.code = $2`, collegeID, code))
}

func (r *departmentRepository) Create(ctx context.Context, d *model.Department) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (name, code, description, college_id, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		d.Name, d.Code, d.Description, d.CollegeID, d.IsActive, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	return mapError(err)
}

func (r *departmentRepository) Update(ctx context.Context, d *model.Department) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE departments
		 SET name = $1, code = $2, description = $3, is_active = $4, updated_at = $5
		 WHERE id = $6`,
		d.Name, d.Code, d.Description, d.IsActive, d.UpdatedAt, d.ID,
	))
}

func (r *departmentRepository) ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE departments SET is_active = NOT is_active, updated_at = $2 WHERE id = $1`, id, at))
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id))
}

func collegeRef(id *uuid.UUID, name, code *string) *model.CollegeRef {
	if id == nil {
		return nil
	}
	ref := &model.CollegeRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if code != nil {
		ref.Code = *code
	}
	return ref
}

func departmentRef(id *uuid.UUID, name, code *string) *model.DepartmentRef {
	if id == nil {
		return nil
	}
	ref := &model.DepartmentRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if code != nil {
		ref.Code = *code
	}
	return ref
}
