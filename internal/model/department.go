package model

import (
	"time"

	"github.com/google/uuid"
)

// Department belongs to a college. Code is unique within its college.
type Department struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Description string      `json:"description"`
	CollegeID   uuid.UUID   `json:"college_id"`
	College     *CollegeRef `json:"college"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DepartmentRef is the populated form of a department reference.
type DepartmentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// DepartmentRequest is the payload for creating or updating a department.
// IsActive is only honoured on update; nil keeps the current value.
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=150"`
	Code        string `json:"code" binding:"required,notblank,max=20"`
	Description string `json:"description" binding:"max=2000"`
	IsActive    *bool  `json:"is_active"`
}
