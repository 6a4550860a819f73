package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers classify failures with errors.Is and decide
// whether to re-prompt (ErrInvalidInput, ErrOutOfRange), report
// (ErrNotFound, ErrConflict) or abort the current flow (ErrStore).
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrOutOfRange   = errors.New("out of range")
	ErrStore        = errors.New("store error")
)

func InvalidInputf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrInvalidInput)
}

func NotFoundf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrNotFound)
}

func Conflictf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrConflict)
}

func OutOfRangef(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrOutOfRange)
}

func StoreErrf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), ErrStore)
}

// Recoverable reports whether the user can fix the failure by
// changing their input.
func Recoverable(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrOutOfRange)
}
