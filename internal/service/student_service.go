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

// StudentService handles student business logic.
type StudentService struct {
	clock
	deptRepo    repository.DepartmentRepository
	studentRepo repository.StudentRepository
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	deptRepo repository.DepartmentRepository,
	studentRepo repository.StudentRepository,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		deptRepo:    deptRepo,
		studentRepo: studentRepo,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// ListByDepartment returns the department together with its students.
func (s *StudentService) ListByDepartment(ctx context.Context, deptID uuid.UUID, search string) (*model.Department, []model.Student, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, nil, err
	}
	students, err := s.studentRepo.ListByDepartment(ctx, deptID, strings.TrimSpace(search))
	if err != nil {
		return nil, nil, err
	}
	return dept, students, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	st, err := s.studentRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Student")
	}
	return st, err
}

// Create enrols a student in a department. Roll numbers are unique per
// department; student IDs and emails are unique everywhere.
func (s *StudentService) Create(ctx context.Context, deptID uuid.UUID, req model.StudentRequest) (*model.Student, error) {
	dept, err := s.department(ctx, deptID)
	if err != nil {
		return nil, err
	}

	st := &model.Student{
		DepartmentID: dept.ID,
		CollegeID:    dept.CollegeID,
		Program:      model.ProgramBachelor,
		IsActive:     true,
	}
	if err := applyStudent(st, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, st, ""); err != nil {
		return nil, err
	}

	now := s.timestamp()
	st.CreatedAt, st.UpdatedAt = now, now
	if err := s.studentRepo.Create(ctx, st); err != nil {
		if dup := duplicateStudentError(err, ""); dup != nil {
			return nil, dup
		}
		return nil, err
	}

	s.log.Info().Str("student_id", st.StudentID).Str("department_id", deptID.String()).Msg("Student created")
	return s.GetByID(ctx, st.ID)
}

// Update replaces a student's fields. Department and college are kept.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req model.StudentRequest) (*model.Student, error) {
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyStudent(st, req); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, st, "Another student"); err != nil {
		return nil, err
	}

	st.UpdatedAt = s.timestamp()
	if err := s.studentRepo.Update(ctx, st); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Student")
		}
		if dup := duplicateStudentError(err, "Another student"); dup != nil {
			return nil, dup
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *StudentService) ToggleStatus(ctx context.Context, id uuid.UUID) (*model.Student, string, error) {
	if err := s.studentRepo.ToggleActive(ctx, id, s.timestamp()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", notFound("Student")
		}
		return nil, "", err
	}
	st, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return st, toggledMessage("Student", st.IsActive), nil
}

func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Student")
		}
		return err
	}
	return nil
}

func (s *StudentService) department(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d, err := s.deptRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Department")
	}
	return d, err
}

func applyStudent(st *model.Student, req model.StudentRequest) error {
	admitted, err := time.Parse(dateLayout, strings.TrimSpace(req.DateOfAdmission))
	if err != nil {
		return invalid("date_of_admission", "date_of_admission must be a date in YYYY-MM-DD format")
	}

	st.StudentID = normalizeCode(req.StudentID)
	st.RollNumber = normalizeCode(req.RollNumber)
	st.FirstName = strings.TrimSpace(req.FirstName)
	st.LastName = strings.TrimSpace(req.LastName)
	st.Email = normalizeEmail(req.Email)
	st.Phone = strings.TrimSpace(req.Phone)
	if req.Program != "" {
		st.Program = req.Program
	}
	st.Year = req.Year
	st.Semester = req.Semester
	st.DateOfAdmission = admitted

	st.Address = model.Address{
		Street:  strings.TrimSpace(req.Address.Street),
		City:    strings.TrimSpace(req.Address.City),
		State:   strings.TrimSpace(req.Address.State),
		Pincode: strings.TrimSpace(req.Address.Pincode),
		Country: strings.TrimSpace(req.Address.Country),
	}
	if st.Address.Country == "" {
		st.Address.Country = model.DefaultCountry
	}
	st.ParentContact = model.ParentContact{
		FatherName:  strings.TrimSpace(req.ParentContact.FatherName),
		MotherName:  strings.TrimSpace(req.ParentContact.MotherName),
		ParentPhone: strings.TrimSpace(req.ParentContact.ParentPhone),
		ParentEmail: normalizeEmail(req.ParentContact.ParentEmail),
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	return nil
}

func (s *StudentService) checkUnique(ctx context.Context, st *model.Student, subject string) error {
	if subject == "" {
		subject = "Student"
	}

	other, err := s.studentRepo.GetByStudentID(ctx, st.StudentID)
	if hit, err := found(err); err != nil {
		return err
	} else if hit && other.ID != st.ID {
		return conflict("student_id", subject+" with this student ID already exists")
	}

	other, err = s.studentRepo.GetByEmail(ctx, st.Email)
	if hit, err := found(err); err != nil {
		return err
	} else if hit && other.ID != st.ID {
		return conflict("email", subject+" with this email already exists")
	}

	other, err = s.studentRepo.GetByRollNumber(ctx, st.DepartmentID, st.RollNumber)
	if hit, err := found(err); err != nil {
		return err
	} else if hit && other.ID != st.ID {
		return conflict("roll_number", subject+" with this roll number already exists in this department")
	}
	return nil
}

func duplicateStudentError(err error, subject string) error {
	if subject == "" {
		subject = "Student"
	}
	switch {
	case repository.IsDuplicate(err, repository.ConstraintStudentStudentID):
		return conflict("student_id", subject+" with this student ID already exists")
	case repository.IsDuplicate(err, repository.ConstraintStudentEmail):
		return conflict("email", subject+" with this email already exists")
	case repository.IsDuplicate(err, repository.ConstraintStudentRollNumber):
		return conflict("roll_number", subject+" with this roll number already exists in this department")
	}
	return nil
}
