package errors

import (
	"errors"
	"syscall"
)

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryUser indicates an error the user can fix (bad input, missing args).
	CategoryUser
	// CategoryStorage indicates the settings store could not be reached.
	CategoryStorage
	// CategoryValidation indicates a malformed settings record.
	CategoryValidation
	// CategoryInternal indicates an internal bug or unexpected state.
	CategoryInternal
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryUser:
		return "user"
	case CategoryStorage:
		return "storage"
	case CategoryValidation:
		return "validation"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	// Typed errors first, most specific wins
	if IsInternalError(err) {
		return CategoryInternal
	}
	if IsUserError(err) {
		return CategoryUser
	}
	if IsValidationError(err) || errors.Is(err, ErrSettingsCorrupted) {
		return CategoryValidation
	}
	if IsStorageError(err) {
		return CategoryStorage
	}

	if isSystemLevel(err) {
		return CategoryStorage
	}

	return CategoryUnknown
}

// isSystemLevel checks for filesystem failures that surface from the store.
func isSystemLevel(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOSPC, syscall.EACCES, syscall.EPERM, syscall.EIO, syscall.EROFS:
			return true
		}
	}
	return false
}

// FormatByCategory returns a user-appropriate error message based on category.
func FormatByCategory(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	suggestion := GetSuggestion(err)

	switch Classify(err) {
	case CategoryUser:
		if suggestion != "" {
			return msg + "\n\nTry: " + suggestion
		}
		return msg

	case CategoryStorage:
		if suggestion == "" {
			suggestion = "Check the data directory and run the command again."
		}
		return "Storage error: " + msg + "\n\n" + suggestion

	case CategoryValidation:
		if suggestion == "" {
			suggestion = "Run 'tabguard reset' to restore the default settings."
		}
		return "Settings error: " + msg + "\n\n" + suggestion

	case CategoryInternal:
		return "Something went wrong: " + msg + "\n\nPlease reload or try again later."

	default:
		return msg
	}
}
