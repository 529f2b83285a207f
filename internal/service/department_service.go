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

const (
	msgDepartmentCodeTaken      = "Department with this code already exists in this college"
	msgDepartmentCodeTakenOther = "Another department with this code already exists in this college"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	clock
	collegeRepo repository.CollegeRepository
	deptRepo    repository.DepartmentRepository
	log         zerolog.Logger
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(
	collegeRepo repository.CollegeRepository,
	deptRepo repository.DepartmentRepository,
	log zerolog.Logger,
) *DepartmentService {
	return &DepartmentService{
		collegeRepo: collegeRepo,
		deptRepo:    deptRepo,
		log:         log.With().Str("component", "department_service").Logger(),
	}
}

// ListByCollege returns the college together with its departments.
func (s *DepartmentService) ListByCollege(ctx context.Context, collegeID uuid.UUID, search string) (*model.College, []model.Department, error) {
	college, err := s.collegeRepo.GetByID(ctx, collegeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFound("College")
		}
		return nil, nil, err
	}
	depts, err := s.deptRepo.ListByCollege(ctx, collegeID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, err
	}
	return college, depts, nil
}

// Get returns a department with its college populated.
func (s *DepartmentService) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d, err := s.deptRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Department")
	}
	return d, err
}

// Create adds a department to a college. Codes are unique per college.
func (s *DepartmentService) Create(ctx context.Context, collegeID uuid.UUID, req model.DepartmentRequest) (*model.Department, error) {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("College")
		}
		return nil, err
	}

	code := normalizeCode(req.Code)
	_, err := s.deptRepo.GetByCode(ctx, collegeID, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit {
		return nil, conflict("code", msgDepartmentCodeTaken)
	}

	now := s.timestamp()
	d := &model.Department{
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		CollegeID:   collegeID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deptRepo.Create(ctx, d); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintDepartmentCode) {
			return nil, conflict("code", msgDepartmentCodeTaken)
		}
		return nil, err
	}

	s.log.Info().Str("department_id", d.ID.String()).Str("college_id", collegeID.String()).Msg("Department created")
	return s.Get(ctx, d.ID)
}

// Update replaces a department's editable fields. The owning college never changes.
func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, req model.DepartmentRequest) (*model.Department, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := normalizeCode(req.Code)
	other, err := s.deptRepo.GetByCode(ctx, d.CollegeID, code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit && other.ID != id {
		return nil, conflict("code", msgDepartmentCodeTakenOther)
	}

	d.Name = strings.TrimSpace(req.Name)
	d.Code = code
	d.Description = strings.TrimSpace(req.Description)
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	d.UpdatedAt = s.timestamp()
	if err := s.deptRepo.Update(ctx, d); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Department")
		case repository.IsDuplicate(err, repository.ConstraintDepartmentCode):
			return nil, conflict("code", msgDepartmentCodeTakenOther)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// ToggleStatus flips is_active and returns the updated department.
func (s *DepartmentService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Department, string, error) {
	if err := s.deptRepo.ToggleActive(ctx, id, s.timestamp()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", notFound("Department")
		}
		return nil, "", err
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return d, toggledMessage("Department", d.IsActive), nil
}

// Delete removes a department without touching its faculty, students or subjects.
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.deptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Department")
		}
		return err
	}
	s.log.Info().Str("department_id", id.String()).Msg("Department deleted")
	return nil
}
