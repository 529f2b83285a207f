package repotest

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
)

type collegeRepo struct{ s *Store }

func (r *collegeRepo) List(_ context.Context, search string) ([]model.College, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.College{}
	for _, c := range r.s.colleges {
		if matches(search, c.Name, c.Code) {
			out = append(out, c)
		}
	}
	newestFirst(r.s, out, func(c model.College) (time.Time, uuid.UUID) { return c.CreatedAt, c.ID })
	return out, nil
}

func (r *collegeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.College, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.colleges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *collegeRepo) GetByCode(_ context.Context, code string) (*model.College, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.colleges {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *collegeRepo) conflict(c *model.College) error {
	for _, other := range r.s.colleges {
		if other.ID != c.ID && other.Code == c.Code {
			return duplicate(repository.ConstraintCollegeCode)
		}
	}
	return nil
}

func (r *collegeRepo) Create(_ context.Context, c *model.College) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(c); err != nil {
		return err
	}
	c.ID = r.s.newID()
	r.s.colleges[c.ID] = *c
	return nil
}

func (r *collegeRepo) Update(_ context.Context, c *model.College) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.colleges[c.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(c); err != nil {
		return err
	}
	r.s.colleges[c.ID] = *c
	return nil
}

func (r *collegeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.colleges[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.colleges, id)
	return nil
}

type departmentRepo struct{ s *Store }

func (r *departmentRepo) populate(d model.Department) model.Department {
	d.College = r.s.collegeRef(d.CollegeID)
	return d
}

func (r *departmentRepo) ListByCollege(_ context.Context, collegeID uuid.UUID, search string) ([]model.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Department{}
	for _, d := range r.s.departments {
		if d.CollegeID == collegeID && matches(search, d.Name, d.Code) {
			out = append(out, r.populate(d))
		}
	}
	newestFirst(r.s, out, func(d model.Department) (time.Time, uuid.UUID) { return d.CreatedAt, d.ID })
	return out, nil
}

func (r *departmentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.departments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d = r.populate(d)
	return &d, nil
}

func (r *departmentRepo) GetByCode(_ context.Context, collegeID uuid.UUID, code string) (*model.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.departments {
		if d.CollegeID == collegeID && d.Code == code {
			d = r.populate(d)
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *departmentRepo) conflict(d *model.Department) error {
	for _, other := range r.s.departments {
		if other.ID != d.ID && other.CollegeID == d.CollegeID && other.Code == d.Code {
			return duplicate(repository.ConstraintDepartmentCode)
		}
	}
	return nil
}

func (r *departmentRepo) Create(_ context.Context, d *model.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(d); err != nil {
		return err
	}
	d.ID = r.s.newID()
	d.College = nil
	r.s.departments[d.ID] = *d
	return nil
}

func (r *departmentRepo) Update(_ context.Context, d *model.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.departments[d.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(d); err != nil {
		return err
	}
	cur.Name, cur.Code, cur.Description = d.Name, d.Code, d.Description
	cur.IsActive, cur.UpdatedAt = d.IsActive, d.UpdatedAt
	r.s.departments[d.ID] = cur
	return nil
}

func (r *departmentRepo) ToggleActive(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.departments[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.IsActive = !d.IsActive
	d.UpdatedAt = at
	r.s.departments[id] = d
	return nil
}

func (r *departmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.departments, id)
	return nil
}

type programRepo struct{ s *Store }

func (r *programRepo) populate(p model.Program) model.Program {
	p.College = r.s.collegeRef(p.CollegeID)
	return p
}

func (r *programRepo) ListByCollege(_ context.Context, collegeID uuid.UUID, search string) ([]model.Program, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Program{}
	for _, p := range r.s.programs {
		if p.CollegeID == collegeID && matches(search, p.Name, p.Code) {
			out = append(out, r.populate(p))
		}
	}
	newestFirst(r.s, out, func(p model.Program) (time.Time, uuid.UUID) { return p.CreatedAt, p.ID })
	return out, nil
}

func (r *programRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Program, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.populate(p)
	return &p, nil
}

func (r *programRepo) GetByCode(_ context.Context, collegeID uuid.UUID, code string) (*model.Program, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.programs {
		if p.CollegeID == collegeID && p.Code == code {
			p = r.populate(p)
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *programRepo) conflict(p *model.Program) error {
	for _, other := range r.s.programs {
		if other.ID != p.ID && other.CollegeID == p.CollegeID && other.Code == p.Code {
			return duplicate(repository.ConstraintProgramCode)
		}
	}
	return nil
}

func (r *programRepo) Create(_ context.Context, p *model.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.conflict(p); err != nil {
		return err
	}
	p.ID = r.s.newID()
	p.College = nil
	r.s.programs[p.ID] = *p
	return nil
}

func (r *programRepo) Update(_ context.Context, p *model.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.programs[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(p); err != nil {
		return err
	}
	cur.Name, cur.Code, cur.Duration, cur.Description = p.Name, p.Code, p.Duration, p.Description
	cur.UpdatedAt = p.UpdatedAt
	r.s.programs[p.ID] = cur
	return nil
}

func (r *programRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.programs, id)
	return nil
}
