package model

import (
	"time"

	"github.com/google/uuid"
)

// Program is a degree programme offered by a college.
type Program struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Duration    string      `json:"duration"`
	Description string      `json:"description"`
	CollegeID   uuid.UUID   `json:"college_id"`
	College     *CollegeRef `json:"college"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ProgramRequest is the payload for creating or updating a program.
type ProgramRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=150"`
	Code        string `json:"code" binding:"required,notblank,max=20"`
	Duration    string `json:"duration" binding:"required,notblank,max=50"`
	Description string `json:"description" binding:"max=2000"`
}
