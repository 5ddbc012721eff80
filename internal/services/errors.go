package services

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
)

// Error kinds. Every error a service returns to a handler either wraps one of
// these or is treated as internal.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error is a client-facing failure. Message is safe to return to the caller
// and errors.Is(err, kind) matches the kind it was built with.
type Error struct {
	kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, Message: msg}
}

// Invalid builds a validation error carrying per-field messages.
func Invalid(fields map[string]string) error {
	return &Error{kind: ErrValidation, Message: "Validation failed", Fields: fields}
}

var (
	ErrReportNotFound          = newError(ErrNotFound, "Report not found")
	ErrCategoryNotFound        = newError(ErrNotFound, "Report category not found")
	ErrAdNotFound              = newError(ErrNotFound, "Ad not found")
	ErrCartEntryNotFound       = newError(ErrNotFound, "Cart not found")
	ErrGeneratedReportNotFound = newError(ErrNotFound, "Report not found in your library")
	ErrUserNotFound            = newError(ErrNotFound, "User not found for this email.")

	ErrInvalidQuantity   = newError(ErrValidation, "Quantity must be at least 1")
	ErrInvalidOTP        = newError(ErrValidation, "Invalid or expired OTP.")
	ErrEmailRequired     = newError(ErrValidation, "Email is required.")
	ErrInvalidUnlockMode = newError(ErrValidation, "Unlock mode must be Payment or Credit")

	ErrInvalidToken = newError(ErrUnauthorized, "Invalid or expired refresh token")
)

// mapNotFound swaps a repository miss for the typed service error.
func mapNotFound(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
