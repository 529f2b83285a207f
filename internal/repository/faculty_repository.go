package repository

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FacultyRepository interface {
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Faculty, error)
	ListActiveOptions(ctx context.Context, departmentID uuid.UUID) ([]model.FacultyRef, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Faculty, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.Faculty, error)
	GetByEmail(ctx context.Context, email string) (*model.Faculty, error)
	Create(ctx context.Context, faculty *model.Faculty) error
	Update(ctx context.Context, faculty *model.Faculty) error
	ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type facultyRepository struct {
	pool *pgxpool.Pool
}

func NewFacultyRepository(pool *pgxpool.Pool) FacultyRepository {
	return &facultyRepository{pool: pool}
}

const facultySelect = `
	SELECT f.id, f.employee_id, f.first_name, f.last_name, f.email, f.phone,
	       f.department_id, f.college_id, f.designation, f.qualification, f.experience,
	       f.specialization, f.date_of_joining, f.is_active, f.created_at, f.updated_at,
	       d.id, d.name, d.code, c.id, c.name, c.code
	FROM faculties f
	LEFT JOIN departments d ON d.id = f.department_id
	LEFT JOIN colleges c ON c.id = f.college_id`

func scanFaculty(row pgx.Row) (*model.Faculty, error) {
	f := &model.Faculty{}
	var dID, cID *uuid.UUID
	var dName, dCode, cName, cCode *string
	err := row.Scan(
		&f.ID, &f.EmployeeID, &f.FirstName, &f.LastName, &f.Email, &f.Phone,
		&f.DepartmentID, &f.CollegeID, &f.Designation, &f.Qualification, &f.Experience,
		&f.Specialization, &f.DateOfJoining, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
		&dID, &dName, &dCode, &cID, &cName, &cCode,
	)
	if err != nil {
		return nil, mapError(err)
	}
	f.Department = departmentRef(dID, dName, dCode)
	f.College = collegeRef(cID, cName, cCode)
	return f, nil
}

func (r *facultyRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Faculty, error) {
	rows, err := r.pool.Query(ctx, facultySelect+`
		WHERE f.department_id = $1
		  AND ($2 = ''
		       OR f.first_name ILIKE '%' || $2 || '%'
		       OR f.last_name ILIKE '%' || $2 || '%'
		       OR f.email ILIKE '%' || $2 || '%'
		       OR f.employee_id ILIKE '%' || $2 || '%')
		ORDER BY f.created_at DESC`, departmentID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faculties := []model.Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, *f)
	}
	return faculties, rows.Err()
}

func (r *facultyRepository) ListActiveOptions(ctx context.Context, departmentID uuid.UUID) ([]model.FacultyRef, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, employee_id FROM faculties
		 WHERE department_id = $1 AND is_active
		 ORDER BY first_name, last_name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []model.FacultyRef{}
	for rows.Next() {
		var ref model.FacultyRef
		if err := rows.Scan(&ref.ID, &ref.FirstName, &ref.LastName, &ref.EmployeeID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *facultyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, facultySelect+` WHERE f.id = $1`, id))
}

func (r *facultyRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, facultySelect+` WHERE f.employee_id = $1`, employeeID))
}

func (r *facultyRepository) GetByEmail(ctx context.Context, email string) (*model.Faculty, error) {
	return scanFaculty(r.pool.QueryRow(ctx, facultySelect+` WHERE f.email = $1`, email))
}

func (r *facultyRepository) Create(ctx context.Context, f *model.Faculty) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO faculties (
			employee_id, first_name, last_name, email, phone, department_id, college_id,
			designation, qualification, experience, specialization, date_of_joining,
			is_active, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		f.EmployeeID, f.FirstName, f.LastName, f.Email, f.Phone, f.DepartmentID, f.CollegeID,
		f.Designation, f.Qualification, f.Experience, f.Specialization, f.DateOfJoining,
		f.IsActive, f.CreatedAt, f.UpdatedAt,
	).Scan(&f.ID)
	return mapError(err)
}

func (r *facultyRepository) Update(ctx context.Context, f *model.Faculty) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE faculties
		 SET employee_id = $1, first_name = $2, last_name = $3, email = $4, phone = $5,
		     designation = $6, qualification = $7, experience = $8, specialization = $9,
		     date_of_joining = $10, is_active = $11, updated_at = $12
		 WHERE id = $13`,
		f.EmployeeID, f.FirstName, f.LastName, f.Email, f.Phone,
		f.Designation, f.Qualification, f.Experience, f.Specialization,
		f.DateOfJoining, f.IsActive, f.UpdatedAt, f.ID,
	))
}

func (r *facultyRepository) ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE faculties SET is_active = NOT is_active, updated_at = $2 WHERE id = $1`, id, at))
}

func (r *facultyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM faculties WHERE id = $1`, id))
}
