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

const msgProgramCodeTaken = "Program with this code already exists in this college"

// ProgramService handles program business logic.
type ProgramService struct {
	clock
	collegeRepo repository.CollegeRepository
	programRepo repository.ProgramRepository
	log         zerolog.Logger
}

// NewProgramService creates a new ProgramService.
func NewProgramService(
	collegeRepo repository.CollegeRepository,
	programRepo repository.ProgramRepository,
	log zerolog.Logger,
) *ProgramService {
	return &ProgramService{
		collegeRepo: collegeRepo,
		programRepo: programRepo,
		log:         log.With().Str("component", "program_service").Logger(),
	}
}

// ListByCollege returns the college together with its programs.
func (s *ProgramService) ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) (*model.College, []model.Program, error) {
	college, err := s.collegeRepo.GetByID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFound("College")
		}
		return nil, nil, err
	}
	programs, err := s.programRepo.ListByCollege(ctx, collegeID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, err
	}
	return college, programs, nil
}

func (s *ProgramService) Get(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	p, err := s.programRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Program")
	}
	return p, err
}

func (s *ProgramService) Create(ctx context.Context, collegeID uuid.UUID, req model.ProgramRequest) (*model.Program, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("College")
		}
		return nil, err
	}

	code := normalizeCode(req.Code)
	_, err := s.programRepo.GetByCode(ctx, collegeID, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit {
		return nil, conflict("code", msgProgramCodeTaken)
	}

	now := s.timestamp()
	p := &model.Program{
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Duration:    strings.TrimSpace(req.Duration),
		Description: strings.TrimSpace(req.Description),
		CollegeID:   collegeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.programRepo.Create(ctx, p); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintProgramCode) {
			return nil, conflict("code", msgProgramCodeTaken)
		}
		return nil, err
	}

	s.log.Info().Str("program_id", p.ID.String()).Str("college_id", collegeID.String()).Msg("Program created")
	return s.Get(ctx, p.ID)
}

func (s *ProgramService) Update(ctx context.Context, id uuid.UUID, req model.ProgramRequest) (*model.Program, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := normalizeCode(req.Code)
	other, err := s.programRepo.GetByCode(ctx, p.CollegeID, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit && other.ID != id {
		return nil, conflict("code", msgProgramCodeTaken)
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Code = code
	p.Duration = strings.TrimSpace(req.Duration)
	p.Description = strings.TrimSpace(req.Description)
	p.UpdatedAt = s.timestamp()
	if err := s.programRepo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Program")
		case repository.IsDuplicate(err, repository.ConstraintProgramCode):
			return nil, conflict("code", msgProgramCodeTaken)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProgramService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.programRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Program")
		}
		return err
	}
	return nil
}
