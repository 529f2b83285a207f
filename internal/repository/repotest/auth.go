package repotest

import (
	"context"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) UserCodeExists(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.UserCode != nil && *u.UserCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return duplicate(repository.ConstraintUserEmail)
		}
		if u.UserCode != nil && other.UserCode != nil && *other.UserCode == *u.UserCode {
			return duplicate(repository.ConstraintUserCode)
		}
	}
	u.ID = r.s.newID()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) UpdatePassword(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.PasswordHash, cur.UpdatedAt = u.PasswordHash, u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

// tokenStore ignores TTLs; tests never outlive a token.
type tokenStore struct{ s *Store }

func (t *tokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (t *tokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	_, ok := t.s.revoked[jti]
	return ok, nil
}

type statsRepo struct{ s *Store }

func (r *statsRepo) CollegeCounts(_ context.Context, collegeID uuid.UUID) (*model.CollegeStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &model.CollegeStats{CollegeID: collegeID}
	for _, d := range r.s.departments {
		if d.CollegeID == collegeID {
			st.Departments++
		}
	}
	for _, p := range r.s.programs {
		if p.CollegeID == collegeID {
			st.Programs++
		}
	}
	for _, f := range r.s.faculties {
		if f.CollegeID == collegeID {
			st.Faculty++
		}
	}
	for _, s := range r.s.students {
		if s.CollegeID == collegeID {
			st.Students++
		}
	}
	for _, s := range r.s.subjects {
		if s.CollegeID == collegeID {
			st.Subjects++
		}
	}
	return st, nil
}

type statsCache struct{ s *Store }

func (c *statsCache) Get(_ context.Context, collegeID uuid.UUID) (*model.CollegeStats, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	st, ok := c.s.statsCache[collegeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (c *statsCache) Set(_ context.Context, st *model.CollegeStats, _ time.Duration) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.statsCache[st.CollegeID] = *st
	return nil
}

func (c *statsCache) Invalidate(_ context.Context, collegeID uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	delete(c.s.statsCache, collegeID)
	return nil
}
