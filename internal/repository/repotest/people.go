package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
)

type facultyRepo struct{ s *Store }

func (r *facultyRepo) populate(f model.Faculty) model.Faculty {
	f.Department = r.s.departmentRef(f.DepartmentID)
	f.College = r.s.collegeRef(f.CollegeID)
	return f
}

func (r *facultyRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID, search string) ([]model.Faculty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Faculty{}
	for _, f := range r.s.faculties {
		if f.DepartmentID == departmentID && matches(search, f.FirstName, f.LastName, f.Email, f.EmployeeID) {
			out = append(out, r.populate(f))
		}
	}
	newestFirst(r.s, out, func(f model.Faculty) (time.Time, uuid.UUID) { return f.CreatedAt, f.ID })
	return out, nil
}

func (r *facultyRepo) ListActiveOptions(_ context.Context, departmentID uuid.UUID) ([]model.FacultyRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.FacultyRef{}
	for _, f := range r.s.faculties {
		if f.DepartmentID == departmentID && f.IsActive {
			out = append(out, model.FacultyRef{ID: f.ID, FirstName: f.FirstName, LastName: f.LastName, EmployeeID: f.EmployeeID})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

func (r *facultyRepo) find(pred func(model.Faculty) bool) (*model.Faculty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.faculties {
		if pred(f) {
			f = r.populate(f)
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *facultyRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Faculty, error) {
	return r.find(func(f model.Faculty) bool { return f.ID == id })
}

func (r *facultyRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.Faculty, error) {
	return r.find(func(f model.Faculty) bool { return f.EmployeeID == employeeID })
}

func (r *facultyRepo) GetByEmail(_ context.Context, email string) (*model.Faculty, error) {
	return r.find(func(f model.Faculty) bool { return f.Email == email })
}

func (r *facultyRepo) conflict(f *model.Faculty) error {
	for _, other := range r.s.faculties {
		if other.ID == f.ID {
			continue
		}
		if other.EmployeeID == f.EmployeeID {
			return duplicate(repository.ConstraintFacultyEmployeeID)
		}
		if other.Email == f.Email {
			return duplicate(repository.ConstraintFacultyEmail)
		}
	}
	return nil
}

func (r *facultyRepo) Create(_ context.Context, f *model.Faculty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(f); err != nil {
		return err
	}
	f.ID = r.s.newID()
	row := *f
	row.Department, row.College = nil, nil
	r.s.faculties[f.ID] = row
	return nil
}

func (r *facultyRepo) Update(_ context.Context, f *model.Faculty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.faculties[f.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(f); err != nil {
		return err
	}
	row := *f
	row.DepartmentID, row.CollegeID, row.CreatedAt = cur.DepartmentID, cur.CollegeID, cur.CreatedAt
	row.Department, row.College = nil, nil
	r.s.faculties[f.ID] = row
	return nil
}

func (r *facultyRepo) ToggleActive(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.faculties[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.IsActive = !f.IsActive
	f.UpdatedAt = at
	r.s.faculties[id] = f
	return nil
}

func (r *facultyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.faculties[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.faculties, id)
	return nil
}

type studentRepo struct{ s *Store }

func (r *studentRepo) populate(st model.Student) model.Student {
	st.Department = r.s.departmentRef(st.DepartmentID)
	st.College = r.s.collegeRef(st.CollegeID)
	return st
}

func (r *studentRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID, search string) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Student{}
	for _, st := range r.s.students {
		if st.DepartmentID == departmentID &&
			matches(search, st.FirstName, st.LastName, st.Email, st.StudentID, st.RollNumber) {
			out = append(out, r.populate(st))
		}
	}
	newestFirst(r.s, out, func(st model.Student) (time.Time, uuid.UUID) { return st.CreatedAt, st.ID })
	return out, nil
}

func (r *studentRepo) find(pred func(model.Student) bool) (*model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.students {
		if pred(st) {
			st = r.populate(st)
			return &st, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *studentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	return r.find(func(st model.Student) bool { return st.ID == id })
}

func (r *studentRepo) GetByStudentID(_ context.Context, studentID string) (*model.Student, error) {
	return r.find(func(st model.Student) bool { return st.StudentID == studentID })
}

func (r *studentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	return r.find(func(st model.Student) bool { return st.Email == email })
}

func (r *studentRepo) GetByRollNumber(_ context.Context, departmentID uuid.UUID, rollNumber string) (*model.Student, error) {
	return r.find(func(st model.Student) bool {
		return st.DepartmentID == departmentID && st.RollNumber == rollNumber
	})
}

func (r *studentRepo) conflict(st *model.Student, departmentID uuid.UUID) error {
	for _, other := range r.s.students {
		if other.ID == st.ID {
			continue
		}
		switch {
		case other.StudentID == st.StudentID:
			return duplicate(repository.ConstraintStudentStudentID)
		case other.Email == st.Email:
			return duplicate(repository.ConstraintStudentEmail)
		case other.DepartmentID == departmentID && other.RollNumber == st.RollNumber:
			return duplicate(repository.ConstraintStudentRollNumber)
		}
	}
	return nil
}

func (r *studentRepo) Create(_ context.Context, st *model.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(st, st.DepartmentID); err != nil {
		return err
	}
	st.ID = r.s.newID()
	row := *st
	row.Department, row.College = nil, nil
	r.s.students[st.ID] = row
	return nil
}

func (r *studentRepo) Update(_ context.Context, st *model.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.students[st.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(st, cur.DepartmentID); err != nil {
		return err
	}
	row := *st
	row.DepartmentID, row.CollegeID, row.CreatedAt = cur.DepartmentID, cur.CollegeID, cur.CreatedAt
	row.Department, row.College = nil, nil
	r.s.students[st.ID] = row
	return nil
}

func (r *studentRepo) ToggleActive(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.students[id]
	if !ok {
		return repository.ErrNotFound
	}
	st.IsActive = !st.IsActive
	st.UpdatedAt = at
	r.s.students[id] = st
	return nil
}

func (r *studentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.students[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.students, id)
	return nil
}
