package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProgramLevel is the degree level a student is enrolled in or a subject belongs to.
type ProgramLevel string

const (
	ProgramBachelor ProgramLevel = "Bachelor"
	ProgramMaster   ProgramLevel = "Master"
	ProgramPhD      ProgramLevel = "PhD"
)

// ProgramLevels lists every accepted program level.
var ProgramLevels = []ProgramLevel{ProgramBachelor, ProgramMaster, ProgramPhD}

// DefaultCountry is filled into addresses that leave the country empty.
const DefaultCountry = "India"

// Address is stored as a JSON document alongside the student row.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// ParentContact is stored as a JSON document alongside the student row.
type ParentContact struct {
	FatherName  string `json:"father_name"`
	MotherName  string `json:"mother_name"`
	ParentPhone string `json:"parent_phone"`
	ParentEmail string `json:"parent_email"`
}

// Student is enrolled in a department.
//
// CollegeID is a snapshot of the department's college at creation time.
type Student struct {
	ID              uuid.UUID      `json:"id"`
	StudentID       string         `json:"student_id"`
	RollNumber      string         `json:"roll_number"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	DepartmentID    uuid.UUID      `json:"department_id"`
	Department      *DepartmentRef `json:"department"`
	CollegeID       uuid.UUID      `json:"college_id"`
	College         *CollegeRef    `json:"college"`
	Program         ProgramLevel   `json:"program"`
	Year            int            `json:"year"`
	Semester        int            `json:"semester"`
	DateOfAdmission time.Time      `json:"date_of_admission"`
	IsActive        bool           `json:"is_active"`
	Address         Address        `json:"address"`
	ParentContact   ParentContact  `json:"parent_contact"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return fullName(s.FirstName, s.LastName)
}

// MarshalJSON adds the computed full_name field.
func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return json.Marshal(struct {
		plain
		FullName string `json:"full_name"`
	}{plain(s), s.FullName()})
}

// StudentRequest is the payload for creating or updating a student.
type StudentRequest struct {
	StudentID       string        `json:"student_id" binding:"required,notblank,max=30"`
	RollNumber      string        `json:"roll_number" binding:"required,notblank,max=30"`
	FirstName       string        `json:"first_name" binding:"required,notblank,max=100"`
	LastName        string        `json:"last_name" binding:"required,notblank,max=100"`
	Email           string        `json:"email" binding:"required,notblank,email,max=255"`
	Phone           string        `json:"phone" binding:"required,notblank,max=30"`
	Program         ProgramLevel  `json:"program" binding:"omitempty,program_level"`
	Year            int           `json:"year" binding:"required,min=1,max=6"`
	Semester        int           `json:"semester" binding:"required,min=1,max=12"`
	DateOfAdmission string        `json:"date_of_admission" binding:"required,notblank,datetime=2006-01-02"`
	Address         Address       `json:"address"`
	ParentContact   ParentContact `json:"parent_contact"`
	IsActive        *bool         `json:"is_active"`
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
