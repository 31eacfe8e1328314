package validate

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Critical gate errors
	ErrProjectNameRequired   = errors.New("project name is required")
	ErrDBPasswordRequired    = errors.New("database password is required")
	ErrAdminPasswordRequired = errors.New("admin password is required")

	// Project name errors
	ErrNamePattern  = errors.New("invalid project name")
	ErrNameReserved = errors.New("project name is reserved")

	// Port errors
	ErrPortRange     = errors.New("port out of range")
	ErrPortsEqual    = errors.New("ports cannot be equal")
	ErrPortWellKnown = errors.New("port collides with a well-known service")

	// Domain errors
	ErrDomainPattern = errors.New("invalid domain")
	ErrDomainLiteral = errors.New("domain must be a real hostname")

	// Identifier errors
	ErrIdentifierRequired = errors.New("identifier is required")

	// Secret strength errors
	ErrSecretTooShort   = errors.New("secret is too short")
	ErrSecretWhitespace = errors.New("secret contains whitespace")
	ErrSecretAllDigits  = errors.New("secret is all digits")

	// Resource errors
	ErrSingleWorker    = errors.New("single-worker mode is not supported")
	ErrNegativeWorkers = errors.New("worker count cannot be negative")
	ErrNegativeCron    = errors.New("cron thread count cannot be negative")
	ErrMemoryTooLow    = errors.New("memory limit too low")

	// Log level errors
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// FieldError wraps a violation with the config field it is attributable to.
type FieldError struct {
	Field   string // e.g., "http_port"
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError.
func NewFieldError(field, message string, err error) *FieldError {
	return &FieldError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
