// Package errors provides consistent error types for tabguard.
// It separates four failure kinds so callers can pick a different surface for
// each: UserError (bad input), StorageError (settings store unavailable),
// ValidationError (malformed settings) and InternalError (broken invariant).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrDomainRejected    = errors.New("domain rejected")
	ErrDomainNotBlocked  = errors.New("domain not in block-list")
	ErrInvalidWeekday    = errors.New("invalid weekday")
	ErrInvalidClock      = errors.New("invalid time of day")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrStoreUnavailable  = errors.New("settings store unavailable")
	ErrSettingsCorrupted = errors.New("settings record corrupted")
	ErrRedirectorClosed  = errors.New("redirector closed")
)

// UserError represents an error that the user can fix.
// Examples: invalid input, missing required arguments, incorrect format.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel the error matches (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// StorageError reports that the settings store could not be read or written.
type StorageError struct {
	Op    string // get, set, install, reset
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("settings store %s failed: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("settings store %s failed", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match ErrStoreUnavailable for every StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStorageError wraps a store failure.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

// ValidationError reports a settings record that violates an invariant.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// InternalError represents a bug: an invariant that should never break, or a
// panic recovered inside a handler.
type InternalError struct {
	Op      string
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("internal error in %s: %s", e.Op, e.Message)
	}
	return "internal error: " + e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// NewInternalError creates a new InternalError.
func NewInternalError(op, message string, cause error) *InternalError {
	return &InternalError{Op: op, Message: message, Cause: cause}
}

// FromPanic converts a recovered panic value into an InternalError.
func FromPanic(op string, recovered any) *InternalError {
	if err, ok := recovered.(error); ok {
		return NewInternalError(op, err.Error(), err)
	}
	return NewInternalError(op, fmt.Sprint(recovered), nil)
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsStorageError checks if an error is a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInternalError checks if an error is an InternalError.
func IsInternalError(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
