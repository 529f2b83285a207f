package repository

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubjectRepository interface {
	ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Subject, error)
	ListActiveOptions(ctx context.Context, departmentID uuid.UUID) ([]model.SubjectOption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	GetByCode(ctx context.Context, departmentID uuid.UUID, code string) (*model.Subject, error)
	// FindRefs returns the subjects among ids that exist, in no particular order.
	FindRefs(ctx context.Context, ids []uuid.UUID) ([]model.SubjectRef, error)
	// HasDependents reports whether any subject lists id as a prerequisite.
	HasDependents(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, subject *model.Subject) error
	Update(ctx context.Context, subject *model.Subject) error
	ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type subjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) SubjectRepository {
	return &subjectRepository{pool: pool}
}

const subjectSelect = `
	SELECT s.id, s.name, s.code, s.description, s.department_id, s.college_id, s.credits,
	       s.type, s.semester, s.year, s.program, s.is_elective, s.prerequisites,
	       s.faculty_id, s.syllabus, s.is_active, s.created_at, s.updated_at,
	       d.id, d.name, d.code, c.id, c.name, c.code,
	       f.id, f.first_name, f.last_name, f.employee_id
	FROM subjects s
	LEFT JOIN departments d ON d.id = s.department_id
	LEFT JOIN colleges c ON c.id = s.college_id
	LEFT JOIN faculties f ON f.id = s.faculty_id`

func scanSubject(row pgx.Row) (*model.Subject, error) {
	s := &model.Subject{}
	var dID, cID, fID *uuid.UUID
	var dName, dCode, cName, cCode *string
	var fFirst, fLast, fEmployee *string
	err := row.Scan(
		&s.ID, &s.Name, &s.Code, &s.Description, &s.DepartmentID, &s.CollegeID, &s.Credits,
		&s.Type, &s.Semester, &s.Year, &s.Program, &s.IsElective, &s.PrerequisiteIDs,
		&s.FacultyID, &s.Syllabus, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&dID, &dName, &dCode, &cID, &cName, &cCode,
		&fID, &fFirst, &fLast, &fEmployee,
	)
	if err != nil {
		return nil, mapError(err)
	}
	s.Department = departmentRef(dID, dName, dCode)
	s.College = collegeRef(cID, cName, cCode)
	if fID != nil {
		s.Faculty = &model.FacultyRef{ID: *fID}
		if fFirst != nil {
			s.Faculty.FirstName = *fFirst
		}
		if fLast != nil {
			s.Faculty.LastName = *fLast
		}
		if fEmployee != nil {
			s.Faculty.EmployeeID = *fEmployee
		}
	}
	if s.PrerequisiteIDs == nil {
		s.PrerequisiteIDs = []uuid.UUID{}
	}
	return s, nil
}

// populatePrerequisites resolves prerequisite references for all subjects with
// one query. Dangling ids are dropped from the populated list.
func (r *subjectRepository) populatePrerequisites(ctx context.Context, subjects []*model.Subject) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, s := range subjects {
		for _, id := range s.PrerequisiteIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	byID := make(map[uuid.UUID]model.SubjectRef, len(ids))
	if len(ids) > 0 {
		refs, err := r.FindRefs(ctx, ids)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			byID[ref.ID] = ref
		}
	}

	for _, s := range subjects {
		s.Prerequisites = make([]model.SubjectRef, 0, len(s.PrerequisiteIDs))
		for _, id := range s.PrerequisiteIDs {
			if ref, ok := byID[id]; ok {
				s.Prerequisites = append(s.Prerequisites, ref)
			}
		}
	}
	return nil
}

func (r *subjectRepository) getOne(ctx context.Context, where string, args ...any) (*model.Subject, error) {
	s, err := scanSubject(r.pool.QueryRow(ctx, subjectSelect+where, args...))
	if err != nil {
		return nil, err
	}
	if err := r.populatePrerequisites(ctx, []*model.Subject{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subjectRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, search string) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, subjectSelect+`
		WHERE s.department_id = $1
		  AND ($2 = '' OR s.name ILIKE '%' || $2 || '%' OR s.code ILIKE '%' || $2 || '%')
		ORDER BY s.year, s.semester, s.code`, departmentID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*model.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populatePrerequisites(ctx, ptrs); err != nil {
		return nil, err
	}

	subjects := make([]model.Subject, 0, len(ptrs))
	for _, s := range ptrs {
		subjects = append(subjects, *s)
	}
	return subjects, nil
}

func (r *subjectRepository) ListActiveOptions(ctx context.Context, departmentID uuid.UUID) ([]model.SubjectOption, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, year, semester FROM subjects
		 WHERE department_id = $1 AND is_active
		 ORDER BY year, semester, code`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	opts := []model.SubjectOption{}
	for rows.Next() {
		var o model.SubjectOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Code, &o.Year, &o.Semester); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

func (r *subjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	return r.getOne(ctx, ` WHERE s.id = $1`, id)
}

func (r *subjectRepository) GetByCode(ctx context.Context, departmentID uuid.UUID, code string) (*model.Subject, error) {
	return r.getOne(ctx, ` WHERE s.department_id = $1 AND s.code = $2`, departmentID, code)
}

func (r *subjectRepository) FindRefs(ctx context.Context, ids []uuid.UUID) ([]model.SubjectRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, code FROM subjects WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []model.SubjectRef{}
	for rows.Next() {
		var ref model.SubjectRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Code); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *subjectRepository) HasDependents(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subjects WHERE prerequisites @> ARRAY[$1::uuid])`, id,
	).Scan(&exists)
	return exists, err
}

func (r *subjectRepository) Create(ctx context.Context, s *model.Subject) error {
	if s.PrerequisiteIDs == nil {
		s.PrerequisiteIDs = []uuid.UUID{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects (
			name, code, description, department_id, college_id, credits, type, semester, year,
			program, is_elective, prerequisites, faculty_id, syllabus, is_active, created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id`,
		s.Name, s.Code, s.Description, s.DepartmentID, s.CollegeID, s.Credits, s.Type, s.Semester, s.Year,
		s.Program, s.IsElective, s.PrerequisiteIDs, s.FacultyID, s.Syllabus, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	return mapError(err)
}

func (r *subjectRepository) Update(ctx context.Context, s *model.Subject) error {
	if s.PrerequisiteIDs == nil {
		s.PrerequisiteIDs = []uuid.UUID{}
	}
	return affected(r.pool.Exec(ctx,
		`UPDATE subjects
		 SET name = $1, code = $2, description = $3, credits = $4, type = $5, semester = $6,
		     year = $7, program = $8, is_elective = $9, prerequisites = $10, faculty_id = $11,
		     syllabus = $12, is_active = $13, updated_at = $14
		 WHERE id = $15`,
		s.Name, s.Code, s.Description, s.Credits, s.Type, s.Semester,
		s.Year, s.Program, s.IsElective, s.PrerequisiteIDs, s.FacultyID,
		s.Syllabus, s.IsActive, s.UpdatedAt, s.ID,
	))
}

func (r *subjectRepository) ToggleActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return affected(r.pool.Exec(ctx,
		`UPDATE subjects SET is_active = NOT is_active, updated_at = $2 WHERE id = $1`, id, at))
}

func (r *subjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id))
}
