package repotest

import (
	"context"
	"sort"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
)

type subjectRepo struct{ s *Store }

func (r *subjectRepo) populate(sub model.Subject) model.Subject {
	sub.Department = r.s.departmentRef(sub.DepartmentID)
	sub.College = r.s.collegeRef(sub.CollegeID)
	sub.Faculty = nil
	if sub.FacultyID != nil {
		if f, ok := r.s.faculties[*sub.FacultyID]; ok {
			sub.Faculty = &model.FacultyRef{ID: f.ID, FirstName: f.FirstName, LastName: f.LastName, EmployeeID: f.EmployeeID}
		}
	}
	sub.PrerequisiteIDs = append([]uuid.UUID{}, sub.PrerequisiteIDs...)
	sub.Prerequisites = make([]model.SubjectRef, 0, len(sub.PrerequisiteIDs))
	for _, id := range sub.PrerequisiteIDs {
		if p, ok := r.s.subjects[id]; ok {
			sub.Prerequisites = append(sub.Prerequisites, model.SubjectRef{ID: p.ID, Name: p.Name, Code: p.Code})
		}
	}
	return sub
}

func (r *subjectRepo) ListByDepartment(_ context.Context, departmentID uuid.UUID, search string) ([]model.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Subject{}
	for _, sub := range r.s.subjects {
		if sub.DepartmentID == departmentID && matches(search, sub.Name, sub.Code) {
			out = append(out, r.populate(sub))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return subjectLess(out[i].Year, out[i].Semester, out[i].Code, out[j].Year, out[j].Semester, out[j].Code)
	})
	return out, nil
}

func (r *subjectRepo) ListActiveOptions(_ context.Context, departmentID uuid.UUID) ([]model.SubjectOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.SubjectOption{}
	for _, sub := range r.s.subjects {
		if sub.DepartmentID == departmentID && sub.IsActive {
			out = append(out, model.SubjectOption{ID: sub.ID, Name: sub.Name, Code: sub.Code, Year: sub.Year, Semester: sub.Semester})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return subjectLess(out[i].Year, out[i].Semester, out[i].Code, out[j].Year, out[j].Semester, out[j].Code)
	})
	return out, nil
}

func subjectLess(yi, si int, ci string, yj, sj int, cj string) bool {
	if yi != yj {
		return yi < yj
	}
	if si != sj {
		return si < sj
	}
	return ci < cj
}

func (r *subjectRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subjects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sub = r.populate(sub)
	return &sub, nil
}

func (r *subjectRepo) GetByCode(_ context.Context, departmentID uuid.UUID, code string) (*model.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subjects {
		if sub.DepartmentID == departmentID && sub.Code == code {
			sub = r.populate(sub)
			return &sub, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *subjectRepo) FindRefs(_ context.Context, ids []uuid.UUID) ([]model.SubjectRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.SubjectRef{}
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if sub, ok := r.s.subjects[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, model.SubjectRef{ID: sub.ID, Name: sub.Name, Code: sub.Code})
		}
	}
	return out, nil
}

func (r *subjectRepo) HasDependents(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subjects {
		for _, p := range sub.PrerequisiteIDs {
			if p == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *subjectRepo) conflict(sub *model.Subject, departmentID uuid.UUID) error {
	for _, other := range r.s.subjects {
		if other.ID != sub.ID && other.DepartmentID == departmentID && other.Code == sub.Code {
			return duplicate(repository.ConstraintSubjectCode)
		}
	}
	return nil
}

func (r *subjectRepo) store(sub model.Subject) {
	sub.PrerequisiteIDs = append([]uuid.UUID{}, sub.PrerequisiteIDs...)
	sub.Prerequisites = nil
	sub.Department, sub.College, sub.Faculty = nil, nil, nil
	r.s.subjects[sub.ID] = sub
}

func (r *subjectRepo) Create(_ context.Context, sub *model.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(sub, sub.DepartmentID); err != nil {
		return err
	}
	sub.ID = r.s.newID()
	r.store(*sub)
	return nil
}

func (r *subjectRepo) Update(_ context.Context, sub *model.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.subjects[sub.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(sub, cur.DepartmentID); err != nil {
		return err
	}
	row := *sub
	row.DepartmentID, row.CollegeID, row.CreatedAt = cur.DepartmentID, cur.CollegeID, cur.CreatedAt
	r.store(row)
	return nil
}

func (r *subjectRepo) ToggleActive(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subjects[id]
	if !ok {
		return repository.ErrNotFound
	}
	sub.IsActive = !sub.IsActive
	sub.UpdatedAt = at
	r.s.subjects[id] = sub
	return nil
}

func (r *subjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subjects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.subjects, id)
	return nil
}
