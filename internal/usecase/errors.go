package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// SquadValidationError carries every violation of a rejected squad save.
type SquadValidationError struct {
	Violations []string
}

func (e *SquadValidationError) Error() string {
	return fmt.Sprintf("%s: squad is invalid: %s", ErrInvalidInput, strings.Join(e.Violations, "; "))
}

func (e *SquadValidationError) Unwrap() error {
	return ErrInvalidInput
}
