package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Snapshot format errors
	ErrEmptySnapshot    = errors.New("snapshot has no data rows")
	ErrMissingDimension = errors.New("snapshot missing dimension column")
	ErrMalformedColumn  = errors.New("column name violates prefix+suffix grammar")

	// Selection errors
	ErrUnknownView = errors.New("unknown facet view")
)

// Error constructors with context
func NewMissingDimensionError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingDimension, column)
}

func NewMalformedColumnError(column string, reason string) error {
	return fmt.Errorf("%w: %q (%s)", ErrMalformedColumn, column, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsFormatError(err error) bool {
	return errors.Is(err, ErrEmptySnapshot) ||
		errors.Is(err, ErrMissingDimension) ||
		errors.Is(err, ErrMalformedColumn)
}
