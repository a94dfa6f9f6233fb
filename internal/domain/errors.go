package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPersistence       = errors.New("persistence failed")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrNotFound          = errors.New("not found")
	ErrUserExists        = errors.New("user already exists")
	ErrNoCurrentUser     = errors.New("no current user")
)

// ValidationError reports a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// MalformedSnapshotError reports a persisted or imported record that does not
// satisfy the User shape. It matches ErrMalformedSnapshot.
type MalformedSnapshotError struct {
	Field  string
	Reason string
}

func NewMalformedSnapshotError(field, reason string) *MalformedSnapshotError {
	return &MalformedSnapshotError{Field: field, Reason: reason}
}

func (e *MalformedSnapshotError) Error() string {
	if e.Field == "" {
		return "malformed snapshot: " + e.Reason
	}
	return fmt.Sprintf("malformed snapshot: %s: %s", e.Field, e.Reason)
}

func (e *MalformedSnapshotError) Is(target error) bool { return target == ErrMalformedSnapshot }

type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindValidation        ErrorKind = "validation"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindPersistence       ErrorKind = "persistence"
	KindMalformedSnapshot ErrorKind = "malformed_snapshot"
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInternal          ErrorKind = "internal"
)

// KindOf classifies err into the taxonomy surfaced to callers.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrMalformedSnapshot):
		return KindMalformedSnapshot
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoCurrentUser):
		return KindNotFound
	case errors.Is(err, ErrUserExists):
		return KindConflict
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindInternal
	}
}
