package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// Unique constraint names, shared with migrations and the in-memory stores.
const (
	ConstraintCollegeCode       = "colleges_code_key"
	ConstraintDepartmentCode    = "departments_code_college_key"
	ConstraintProgramCode       = "programs_code_college_key"
	ConstraintFacultyEmployeeID = "faculties_employee_id_key"
	ConstraintFacultyEmail      = "faculties_email_key"
	ConstraintStudentStudentID  = "students_student_id_key"
	ConstraintStudentEmail      = "students_email_key"
	ConstraintStudentRollNumber = "students_roll_number_department_key"
	ConstraintSubjectCode       = "subjects_code_department_key"
	ConstraintUserEmail         = "users_email_key"
	ConstraintUserCode          = "users_user_code_key"
	pgUniqueViolation           = "23505"
)

// DuplicateKeyError reports a unique constraint violation raised by the database.
type DuplicateKeyError struct {
	Constraint string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key violates unique constraint %q", e.Constraint)
}

// IsDuplicate reports whether err is a unique violation on the given constraint.
// An empty constraint matches any unique violation.
func IsDuplicate(err error, constraint string) bool {
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		return false
	}
	return constraint == "" || dup.Constraint == constraint
}

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &DuplicateKeyError{Constraint: pgErr.ConstraintName}
	}
	return err
}

// affected turns a zero-row write into ErrNotFound.
func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
