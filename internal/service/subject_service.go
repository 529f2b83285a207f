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
	msgSubjectCodeTaken      = "Subject with this code already exists in this department"
	msgSubjectCodeTakenOther = "Another subject with this code already exists in this department"
	msgSubjectIsPrerequisite = "Cannot delete subject as it is a prerequisite for other subjects"
)

// SubjectService handles subject business logic.
type SubjectService struct {
	clock
	deptRepo    repository.DepartmentRepository
	facultyRepo repository.FacultyRepository
	subjectRepo repository.SubjectRepository
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(
	deptRepo repository.DepartmentRepository,
	facultyRepo repository.FacultyRepository,
	subjectRepo repository.SubjectRepository,
	log zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		deptRepo:    deptRepo,
		facultyRepo: facultyRepo,
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// ListByDepartment returns the department with its subjects ordered by year, semester and code.
func (s *SubjectService) ListByDepartment(ctx context.Context, deptID uuid.UUID, search string) (*model.Department, []model.Subject, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, nil, err
	}
	subjects, err := s.subjectRepo.ListByDepartment(ctx, deptID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, err
	}
	return dept, subjects, nil
}

// PrerequisiteOptions lists the active subjects of a department.
func (s *SubjectService) PrerequisiteOptions(ctx context.Context, deptID uuid.UUID) ([]model.SubjectOption, error) {
	if _, err := s.department(ctx, deptID); err != nil {
		return nil, err
	}
	return s.subjectRepo.ListActiveOptions(ctx, deptID)
}

func (s *SubjectService) Get(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	sub, err := s.subjectRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Subject")
	}
	return sub, err
}

func (s *SubjectService) Create(ctx context.Context, deptID uuid.UUID, req model.SubjectRequest) (*model.Subject, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, err
	}

	sub := &model.Subject{
		DepartmentID: dept.ID,
		CollegeID:    dept.CollegeID,
		Type:         model.SubjectTheory,
		Program:      model.ProgramBachelor,
		IsActive:     true,
	}
	applySubject(sub, req)

	_, err = s.subjectRepo.GetByCode(ctx, deptID, sub.Code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit {
		return nil, conflict("code", msgSubjectCodeTaken)
	}
	if err := s.checkReferences(ctx, sub); err != nil {
		return nil, err
	}

	now := s.timestamp()
	sub.CreatedAt, sub.UpdatedAt = now, now
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintSubjectCode) {
			return nil, conflict("code", msgSubjectCodeTaken)
		}
		return nil, err
	}

	s.log.Info().Str("subject_id", sub.ID.String()).Str("code", sub.Code).Msg("Subject created")
	return s.Get(ctx, sub.ID)
}

func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, req model.SubjectRequest) (*model.Subject, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applySubject(sub, req)

	other, err := s.subjectRepo.GetByCode(ctx, sub.DepartmentID, sub.Code)
	if hit, err := found(err); err != nil {
		return nil, err
	} else if hit && other.ID != id {
		return nil, conflict("code", msgSubjectCodeTakenOther)
	}
	if err := s.checkReferences(ctx, sub); err != nil {
		return nil, err
	}

	sub.UpdatedAt = s.timestamp()
	if err := s.subjectRepo.Update(ctx, sub); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Subject")
		case repository.IsDuplicate(err, repository.ConstraintSubjectCode):
			return nil, conflict("code", msgSubjectCodeTakenOther)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *SubjectService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Subject, string, error) {
	if err := s.subjectRepo.ToggleActive(ctx, id, s.timestamp()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", notFound("Subject")
		}
		return nil, "", err
	}
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return sub, toggledMessage("Subject", sub.IsActive), nil
}

// Delete removes a subject unless another subject lists it as a prerequisite.
// The check and the delete are not atomic.
func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	dependents, err := s.subjectRepo.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependents {
		return referenced(msgSubjectIsPrerequisite)
	}

	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Subject")
		}
		return err
	}
	s.log.Info().Str("subject_id", id.String()).Msg("Subject deleted")
	return nil
}

func (s *SubjectService) department(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d, err := s.deptRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Department")
	}
	return d, err
}

// checkReferences validates the assigned faculty and prerequisite ids.
func (s *SubjectService) checkReferences(ctx context.Context, sub *model.Subject) error {
	if sub.FacultyID != nil {
		f, err := s.facultyRepo.GetByID(ctx, *sub.FacultyID)
		hit, err := found(err)
		if err != nil {
			return err
		}
		if !hit || !f.IsActive || f.DepartmentID != sub.DepartmentID {
			return invalid("faculty_id", "Selected faculty not found or not active in this department")
		}
	}

	if len(sub.PrerequisiteIDs) == 0 {
		return nil
	}
	for _, id := range sub.PrerequisiteIDs {
		if sub.ID != uuid.Nil && id == sub.ID {
			return invalid("prerequisites", "A subject cannot be its own prerequisite")
		}
	}
	refs, err := s.subjectRepo.FindRefs(ctx, sub.PrerequisiteIDs)
	if err != nil {
		return err
	}
	if len(refs) != len(sub.PrerequisiteIDs) {
		return invalid("prerequisites", "One or more prerequisite subjects were not found")
	}
	return nil
}

// applySubject copies a normalized request onto sub, de-duplicating prerequisites.
func applySubject(sub *model.Subject, req model.SubjectRequest) {
	sub.Name = strings.TrimSpace(req.Name)
	sub.Code = normalizeCode(req.Code)
	sub.Description = strings.TrimSpace(req.Description)
	sub.Credits = req.Credits
	if req.Type != "" {
		sub.Type = req.Type
	}
	sub.Semester = req.Semester
	sub.Year = req.Year
	if req.Program != "" {
		sub.Program = req.Program
	}
	sub.IsElective = req.IsElective
	sub.Syllabus = strings.TrimSpace(req.Syllabus)
	sub.FacultyID = req.FacultyID
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	seen := make(map[uuid.UUID]bool, len(req.Prerequisites))
	sub.PrerequisiteIDs = make([]uuid.UUID, 0, len(req.Prerequisites))
	for _, id := range req.Prerequisites {
		if !seen[id] {
			seen[id] = true
			sub.PrerequisiteIDs = append(sub.PrerequisiteIDs, id)
		}
	}
}
