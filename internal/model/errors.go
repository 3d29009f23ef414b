package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrMaxCluesReached matches any *MaxCluesReachedError via errors.Is.
	ErrMaxCluesReached = errors.New("maximum clues reached")
)

// ValidationError reports a malformed Profile, Round or Turn.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MaxCluesReachedError is returned when a turn cannot read another clue.
type MaxCluesReachedError struct {
	ProfileID string
	CluesRead int
	Max       int
}

func (e *MaxCluesReachedError) Error() string {
	return fmt.Sprintf("maximum clues reached for profile %q (%d of %d)", e.ProfileID, e.CluesRead, e.Max)
}

// Is reports whether target is ErrMaxCluesReached.
func (e *MaxCluesReachedError) Is(target error) bool {
	return target == ErrMaxCluesReached
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
