package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Designation is a faculty member's academic rank.
type Designation string

const (
	DesignationProfessor          Designation = "Professor"
	DesignationAssociateProfessor Designation = "Associate Professor"
	DesignationAssistantProfessor Designation = "Assistant Professor"
	DesignationLecturer           Designation = "Lecturer"
	DesignationInstructor         Designation = "Instructor"
)

// Designations lists every accepted designation.
var Designations = []Designation{
	DesignationProfessor,
	DesignationAssociateProfessor,
	DesignationAssistantProfessor,
	DesignationLecturer,
	DesignationInstructor,
}

// Faculty is a teaching staff member of a department.
//
// CollegeID is copied from the department when the record is created and is
// never re-synced if the department later moves.
type Faculty struct {
	ID             uuid.UUID      `json:"id"`
	EmployeeID     string         `json:"employee_id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	DepartmentID   uuid.UUID      `json:"department_id"`
	Department     *DepartmentRef `json:"department"`
	CollegeID      uuid.UUID      `json:"college_id"`
	College        *CollegeRef    `json:"college"`
	Designation    Designation    `json:"designation"`
	Qualification  string         `json:"qualification"`
	Experience     int            `json:"experience"`
	Specialization string         `json:"specialization"`
	DateOfJoining  time.Time      `json:"date_of_joining"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// FullName joins first and last name.
func (f Faculty) FullName() string {
	return fullName(f.FirstName, f.LastName)
}

// MarshalJSON adds the computed full_name field.
func (f Faculty) MarshalJSON() ([]byte, error) {
	type plain Faculty
	return json.Marshal(struct {
		plain
		FullName string `json:"full_name"`
	}{plain(f), f.FullName()})
}

// FacultyRef is the populated form of a faculty reference on subjects.
type FacultyRef struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	EmployeeID string    `json:"employee_id"`
}

// FacultyRequest is the payload for creating or updating a faculty member.
// Dates use the YYYY-MM-DD form sent by the dashboard date inputs.
type FacultyRequest struct {
	EmployeeID     string      `json:"employee_id" binding:"required,notblank,max=30"`
	FirstName      string      `json:"first_name" binding:"required,notblank,max=100"`
	LastName       string      `json:"last_name" binding:"required,notblank,max=100"`
	Email          string      `json:"email" binding:"required,notblank,email,max=255"`
	Phone          string      `json:"phone" binding:"required,notblank,max=30"`
	Designation    Designation `json:"designation" binding:"omitempty,designation"`
	Qualification  string      `json:"qualification" binding:"required,notblank,max=200"`
	Experience     *int        `json:"experience" binding:"required,min=0,max=80"`
	Specialization string      `json:"specialization" binding:"max=200"`
	DateOfJoining  string      `json:"date_of_joining" binding:"required,notblank,datetime=2006-01-02"`
	IsActive       *bool       `json:"is_active"`
}
