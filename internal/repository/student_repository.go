package repository

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentRepository interface {
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByRollNumber(ctx context.Context, departmentID uuid.UUID, rollNumber string) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type studentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

// address and parent_contact are JSONB; pgx encodes the structs with encoding/json.
const studentSelect = `
	SELECT s.id, s.student_id, s.roll_number, s.first_name, s.last_name, s.email, s.phone,
	       s.department_id, s.college_id, s.program, s.year, s.semester, s.date_of_admission,
	       s.is_active, s.address, s.parent_contact, s.created_at, s.updated_at,
	       d.id, d.name, d.code, c.id, c.name, c.code
	FROM students s
	LEFT JOIN departments d ON d.id = s.department_id
	LEFT JOIN colleges c ON c.id = s.college_id`

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	var dID, cID *uuid.UUID
	var dName, dCode, cName, cCode *string
	err := row.Scan(
		&s.ID, &s.StudentID, &s.RollNumber, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DepartmentID, &s.CollegeID, &s.Program, &s.Year, &s.Semester, &s.DateOfAdmission,
		&s.IsActive, &s.Address, &s.ParentContact, &s.CreatedAt, &s.UpdatedAt,
		&dID, &dName, &dCode, &cID, &cName, &cCode,
	)
	if err != nil {
		return nil, mapError(err)
	}
	s.Department = departmentRef(dID, dName, dCode)
	s.College = collegeRef(cID, cName, cCode)
	return s, nil
}

func (r *studentRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, studentSelect+`
		WHERE s.department_id = $1
		  AND ($2 = ''
		       OR s.first_name ILIKE '%' || $2 || '%'
		       OR s.last_name ILIKE '%' || $2 || '%'
		       OR s.email ILIKE '%' || $2 || '%'
		       OR s.student_id ILIKE '%' || $2 || '%'
		       OR s.roll_number ILIKE '%' || $2 || '%')
		ORDER BY s.created_at DESC`, departmentID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
}

func (r *studentRepository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, studentSelect+` WHERE s.student_id = $1`, studentID))
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, studentSelect+` WHERE s.email = $1`, email))
}

func (r *studentRepository) GetByRollNumber(ctx context.Context, departmentID uuid.UUID, rollNumber string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		studentSelect+` WHERE s.department_id = $1 AND s.roll_number = $2`, departmentID, rollNumber))
}

func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (
			student_id, roll_number, first_name, last_name, email, phone, department_id,
			college_id, program, year, semester, date_of_admission, is_active, address,
			parent_contact, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id`,
		s.StudentID, s.RollNumber, s.FirstName, s.LastName, s.Email, s.Phone, s.DepartmentID,
		s.CollegeID, s.Program, s.Year, s.Semester, s.DateOfAdmission, s.IsActive, s.Address,
		s.ParentContact, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	return mapError(err)
}

func (r *studentRepository) Update(ctx context.Context, s *model.Student) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE students
		 SET student_id = $1, roll_number = $2, first_name = $3, last_name = $4, email = $5,
		     phone = $6, program = $7, year = $8, semester = $9, date_of_admission = $10,
		     is_active = $11, address = $12, parent_contact = $13, updated_at = $14
		 WHERE id = $15`,
		s.StudentID, s.RollNumber, s.FirstName, s.LastName, s.Email,
		s.Phone, s.Program, s.Year, s.Semester, s.DateOfAdmission,
		s.IsActive, s.Address, s.ParentContact, s.UpdatedAt, s.ID,
	))
}

func (r *studentRepository) ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE students SET is_active = NOT is_active, updated_at = $2 WHERE id = $1`, id, at))
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id))
}
