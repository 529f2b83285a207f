package model

import (
	"time"

	"github.com/google/uuid"
)

// SubjectType describes how a subject is taught.
type SubjectType string

const (
	SubjectTheory             SubjectType = "Theory"
	SubjectPractical          SubjectType = "Practical"
	SubjectTheoryAndPractical SubjectType = "Theory + Practical"
)

// SubjectTypes lists every accepted subject type.
var SubjectTypes = []SubjectType{SubjectTheory, SubjectPractical, SubjectTheoryAndPractical}

// Subject is a course taught within a department. Code is unique per department.
type Subject struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Code            string         `json:"code"`
	Description     string         `json:"description"`
	DepartmentID    uuid.UUID      `json:"department_id"`
	Department      *DepartmentRef `json:"department"`
	CollegeID       uuid.UUID      `json:"college_id"`
	College         *CollegeRef    `json:"college"`
	Credits         int            `json:"credits"`
	Type            SubjectType    `json:"type"`
	Semester        int            `json:"semester"`
	Year            int            `json:"year"`
	Program         ProgramLevel   `json:"program"`
	IsElective      bool           `json:"is_elective"`
	PrerequisiteIDs []uuid.UUID    `json:"prerequisite_ids"`
	Prerequisites   []SubjectRef   `json:"prerequisites"`
	FacultyID       *uuid.UUID     `json:"faculty_id"`
	Faculty         *FacultyRef    `json:"faculty"`
	Syllabus        string         `json:"syllabus"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// SubjectRef is the populated form of a prerequisite reference.
type SubjectRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// SubjectOption is the compact form listed in the prerequisite picker.
type SubjectOption struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Code     string    `json:"code"`
	Year     int       `json:"year"`
	Semester int       `json:"semester"`
}

// SubjectRequest is the payload for creating or updating a subject.
type SubjectRequest struct {
	Name          string       `json:"name" binding:"required,notblank,max=150"`
	Code          string       `json:"code" binding:"required,notblank,max=20"`
	Description   string       `json:"description" binding:"max=2000"`
	Credits       int          `json:"credits" binding:"required,min=1,max=10"`
	Type          SubjectType  `json:"type" binding:"omitempty,subject_type"`
	Semester      int          `json:"semester" binding:"required,min=1,max=12"`
	Year          int          `json:"year" binding:"required,min=1,max=6"`
	Program       ProgramLevel `json:"program" binding:"omitempty,program_level"`
	IsElective    bool         `json:"is_elective"`
	Prerequisites []uuid.UUID  `json:"prerequisites"`
	FacultyID     *uuid.UUID   `json:"faculty_id"`
	Syllabus      string       `json:"syllabus" binding:"max=10000"`
	IsActive      *bool        `json:"is_active"`
}
