package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// FacultyService handles faculty business logic.
type FacultyService struct {
	clock
	deptRepo    repository.DepartmentRepository
	facultyRepo repository.FacultyRepository
	log         zerolog.Logger
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(
	deptRepo repository.DepartmentRepository,
	facultyRepo repository.FacultyRepository,
	log zerolog.Logger,
) *FacultyService {
	return &FacultyService{
		deptRepo:    deptRepo,
		facultyRepo: facultyRepo,
		log:         log.With().Str("component", "faculty_service").Logger(),
	}
}

// ListByDepartment returns the department together with its faculty.
func (s *FacultyService) ListByDepartment(ctx context.Context, deptID uuid.UUID, search string) (*model.Department, []model.Faculty, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, nil, err
	}
	faculties, err := s.facultyRepo.ListByDepartment(ctx, deptID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, err
	}
	return dept, faculties, nil
}

// Options lists the active faculty a subject in the department may be assigned to.
func (s *FacultyService) Options(ctx context.Context, deptID uuid.UUID) ([]model.FacultyRef, error) {
	if _, err := s.department(ctx, deptID); err != nil {
		return nil, err
	}
	return s.facultyRepo.ListActiveOptions(ctx, deptID)
}

func (s *FacultyService) Get(ctx context.Context, id uuid.UUID) (*model.Faculty, error) {
	f, err := s.facultyRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Faculty")
	}
	return f, err
}

// Create adds a faculty member. The department must exist before any
// uniqueness check runs, and its college is copied onto the record.
func (s *FacultyService) Create(ctx context.Context, deptID uuid.UUID, req model.FacultyRequest) (*model.Faculty, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, err
	}

	f := &model.Faculty{
		DepartmentID: dept.ID,
		CollegeID:    dept.CollegeID,
		Designation:  model.DesignationAssistantProfessor,
		IsActive:     true,
	}
	if err := s.apply(f, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, f, ""); err != nil {
		return nil, err
	}

	now := s.timestamp()
	f.CreatedAt, f.UpdatedAt = now, now
	if err := s.facultyRepo.Create(ctx, f); err != nil {
		if dup := duplicateFacultyError(err, ""); dup != nil {
			return nil, dup
		}
		return nil, err
	}

	s.log.Info().Str("faculty_id", f.ID.String()).Str("employee_id", f.EmployeeID).Msg("Faculty created")
	return s.Get(ctx, f.ID)
}

// Update replaces a faculty member's fields. Department and college are kept.
func (s *FacultyService) Update(ctx context.Context, id uuid.UUID, req model.FacultyRequest) (*model.Faculty, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(f, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, f, "Another faculty"); err != nil {
		return nil, err
	}

	f.UpdatedAt = s.timestamp()
	if err := s.facultyRepo.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Faculty")
		}
		if dup := duplicateFacultyError(err, "Another faculty"); dup != nil {
			return nil, dup
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *FacultyService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Faculty, string, error) {
	if err := s.facultyRepo.ToggleActive(ctx, id, s.timestamp()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", notFound("Faculty")
		}
		return nil, "", err
	}
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return f, toggledMessage("Faculty", f.IsActive), nil
}

func (s *FacultyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Faculty")
		}
		return err
	}
	return nil
}

func (s *FacultyService) department(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d, err := s.deptRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Department")
	}
	return d, err
}

// apply copies a normalized request onto f.
func (s *FacultyService) apply(f *model.Faculty, req model.FacultyRequest) error {
	joined, err := time.Parse(dateLayout, strings.TrimSpace(req.DateOfJoining))
	if err != nil {
		return invalid("date_of_joining", "date_of_joining must be a date in YYYY-MM-DD format")
	}

	f.EmployeeID = normalizeCode(req.EmployeeID)
	f.FirstName = strings.TrimSpace(req.FirstName)
	f.LastName = strings.TrimSpace(req.LastName)
	f.Email = normalizeEmail(req.Email)
	f.Phone = strings.TrimSpace(req.Phone)
	if req.Designation != "" {
		f.Designation = req.Designation
	}
	f.Qualification = strings.TrimSpace(req.Qualification)
	if req.Experience != nil {
		f.Experience = *req.Experience
	}
	f.Specialization = strings.TrimSpace(req.Specialization)
	f.DateOfJoining = joined
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	return nil
}

func (s *FacultyService) checkUnique(ctx context.Context, f *model.Faculty, subject string) error {
	if subject == "" {
		subject = "Faculty"
	}

	other, err := s.facultyRepo.GetByEmployeeID(ctx, f.EmployeeID)
	if hit, err := found(err); err != nil {
		return err
	} else if hit && other.ID != f.ID {
		return conflict("employee_id", subject+" with this employee ID already exists")
	}

	other, err = s.facultyRepo.GetByEmail(ctx, f.Email)
	if hit, err := found(err); err != nil {
		return err
	} else if hit && other.ID != f.ID {
		return conflict("email", subject+" with this email already exists")
	}
	return nil
}

// duplicateFacultyError maps a unique violation to the pre-check message.
func duplicateFacultyError(err error, subject string) error {
	if subject == "" {
		subject = "Faculty"
	}
	switch {
	case repository.IsDuplicate(err, repository.ConstraintFacultyEmployeeID):
		return conflict("employee_id", subject+" with this employee ID already exists")
	case repository.IsDuplicate(err, repository.ConstraintFacultyEmail):
		return conflict("email", subject+" with this email already exists")
	}
	return nil
}
