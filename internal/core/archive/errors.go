package archive

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Layout errors
	ErrMissingArtifact    = errors.New("expected artifact is missing")
	ErrUnexpectedArtifact = errors.New("artifact does not belong to the bundle layout")

	// Packaging errors
	ErrPackaging = errors.New("packaging failed")
)

// AssembleError wraps assembly failures with the artifact path involved.
type AssembleError struct {
	Path    string // bundle-relative artifact path, e.g. "config/odoo.conf"
	Message string
	Err     error
}

func (e *AssembleError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *AssembleError) Unwrap() error {
	return e.Err
}

// NewAssembleError creates a new AssembleError.
func NewAssembleError(path, message string, err error) *AssembleError {
	return &AssembleError{
		Path:    path,
		Message: message,
		Err:     err,
	}
}
