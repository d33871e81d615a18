package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	// ErrValidation wraps every input validation failure; handlers map it to 400.
	ErrValidation = errors.New("validation failed")

	ErrBookNotFound        = errors.New("book not found")
	ErrRecordNotFound      = errors.New("activity record not found")
	ErrHealthEntryNotFound = errors.New("health entry not found")
	ErrExportNotFound      = errors.New("export not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrExportDisabled = errors.New("data export is not configured")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
