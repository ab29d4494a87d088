package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural input errors abort a run
	ErrInputNotFound   = errors.New("input file not found")
	ErrEmptyInput      = errors.New("input file is empty")
	ErrSchemaViolation = errors.New("input schema violation")
	ErrUnsupportedFile = errors.New("unsupported file type")

	// Rendering
	ErrRenderFailed = errors.New("report rendering failed")
)

// NewSchemaError reports missing required columns along with what was available.
func NewSchemaError(missing []string, available []string) error {
	return fmt.Errorf("%w: missing required columns %v (available: %v)", ErrSchemaViolation, missing, available)
}

// NewColumnCountError reports a positional layout that is too narrow.
func NewColumnCountError(want, got int) error {
	return fmt.Errorf("%w: input must have at least %d columns, but only has %d", ErrSchemaViolation, want, got)
}

// IsStructuralError reports whether err should abort a run before any output is written.
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrSchemaViolation) ||
		errors.Is(err, ErrUnsupportedFile)
}
