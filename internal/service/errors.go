package service

import (
	"errors"
	"strings"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/repository"
)

// ErrorKind classifies a service failure so handlers can pick a status code.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindNotFound
	KindReferenced
	KindUnauthorized
)

// Error is a failure the client caused and may be shown its Message.
// Field names the offending JSON field when there is one.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
}

func (e *Error) Error() string { return e.Message }

// Common auth errors.
var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid email or password"}
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// KindOf returns the kind of err, or 0 if err is not a *Error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func invalid(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Field: field}
}

func conflict(field, msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Field: field}
}

func notFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func referenced(msg string) *Error {
	return &Error{Kind: KindReferenced, Message: msg}
}

// toggledMessage is the confirmation returned by the status toggles.
func toggledMessage(entity string, active bool) string {
	if active {
		return entity + " activated successfully"
	}
	return entity + " deactivated successfully"
}

func normalizeCode(s string) string  { return strings.ToUpper(strings.TrimSpace(s)) }
func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// clock is embedded by services that stamp created_at / updated_at.
type clock struct {
	now func() time.Time
}

// SetClock replaces the time source, for tests.
func (c *clock) SetClock(now func() time.Time) { c.now = now }

func (c *clock) timestamp() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}

// found interprets the result of a lookup used as a pre-check: a hit, a
// clean miss, or a real failure.
func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	}
	return false, err
}
