package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the account type carried in the auth token.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// StudentDetails is optional profile data captured for student accounts.
type StudentDetails struct {
	Phone    string `json:"phone"`
	College  string `json:"college"`
	Program  string `json:"program"`
	Branch   string `json:"branch"`
	Semester string `json:"semester"`
}

// FacultyDetails is optional profile data captured for faculty accounts.
type FacultyDetails struct {
	Phone         string `json:"phone"`
	IsCoordinator bool   `json:"is_coordinator"`
}

// User is a login account. UserCode is only set for bulk-imported accounts.
type User struct {
	ID             uuid.UUID       `json:"id"`
	UserCode       *string         `json:"user_code,omitempty"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Role           Role            `json:"role"`
	StudentDetails *StudentDetails `json:"student_details,omitempty"`
	FacultyDetails *FacultyDetails `json:"faculty_details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RegisterRequest is the payload for self-registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=150"`
	Email    string `json:"email" binding:"required,notblank,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     Role   `json:"role" binding:"required"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,notblank,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// BulkImportRowError describes a single row rejected by a bulk import.
type BulkImportRowError struct {
	Row   int    `json:"row"`
	Email string `json:"email"`
	Error string `json:"error"`
}

// BulkImportResult summarises a bulk import run.
type BulkImportResult struct {
	Count  int                  `json:"count"`
	Total  int                  `json:"total"`
	Errors []BulkImportRowError `json:"errors"`
}
