package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const msgCollegeCodeTaken = "College with this code already exists"

// CollegeService handles college business logic.
type CollegeService struct {
	clock
	collegeRepo repository.CollegeRepository
	log         zerolog.Logger
}

// NewCollegeService creates a new CollegeService.
func NewCollegeService(collegeRepo repository.CollegeRepository, log zerolog.Logger) *CollegeService {
	return &CollegeService{
		collegeRepo: collegeRepo,
		log:         log.With().Str("component", "college_service").Logger(),
	}
}

// List returns colleges newest first, optionally filtered by name or code.
func (s *CollegeService) List(ctx context.Context, search string) ([]model.College, error) {
	return s.collegeRepo.List(ctx, strings.TrimSpace(search))
}

// Get returns a college or a not-found error.
func (s *CollegeService) Get(ctx context.Context, id uuid.UUID) (*model.College, error) {
	c, err := s.collegeRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("College")
	}
	return c, err
}

// Create stores a new college with a normalized, unique code.
func (s *CollegeService) Create(ctx context.Context, req model.CollegeRequest) (*model.College, error) {
	code := normalizeCode(req.Code)
	_, err := s.collegeRepo.GetByCode(ctx, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit {
		return nil, conflict("code", msgCollegeCodeTaken)
	}

	now := s.timestamp()
	c := &model.College{
		Name:      strings.TrimSpace(req.Name),
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.collegeRepo.Create(ctx, c); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintCollegeCode) {
			return nil, conflict("code", msgCollegeCodeTaken)
		}
		return nil, err
	}

	s.log.Info().Str("college_id", c.ID.String()).Str("code", c.Code).Msg("College created")
	return c, nil
}

// Update replaces a college's name and code.
func (s *CollegeService) Update(ctx context.Context, id uuid.UUID, req model.CollegeRequest) (*model.College, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := normalizeCode(req.Code)
	other, err := s.collegeRepo.GetByCode(ctx, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit && other.ID != id {
		return nil, conflict("code", msgCollegeCodeTaken)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Code = code
	c.UpdatedAt = s.timestamp()
	if err := s.collegeRepo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("College")
		case repository.IsDuplicate(err, repository.ConstraintCollegeCode):
			return nil, conflict("code", msgCollegeCodeTaken)
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a college. Its departments and programs are left in place.
func (s *CollegeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.collegeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("College")
		}
		return err
	}
	s.log.Info().Str("college_id", id.String()).Msg("College deleted")
	return nil
}
