package model

import (
	"time"

	"github.com/google/uuid"
)

// College is the root of the academic hierarchy.
type College struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollegeRef is the populated form of a college reference on child records.
type CollegeRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// Ref returns the populated reference for c.
func (c *College) Ref() *CollegeRef {
	return &CollegeRef{ID: c.ID, Name: c.Name, Code: c.Code}
}

// CollegeRequest is the payload for creating or updating a college.
type CollegeRequest struct {
	Name string `json:"name" binding:"required,notblank,max=150"`
	Code string `json:"code" binding:"required,notblank,max=20"`
}

// CollegeStats holds the per-college counters shown on the college dashboard.
type CollegeStats struct {
	CollegeID   uuid.UUID `json:"college_id"`
	Departments int       `json:"departments"`
	Programs    int       `json:"programs"`
	Faculty     int       `json:"faculty"`
	Students    int       `json:"students"`
	Subjects    int       `json:"subjects"`
}
