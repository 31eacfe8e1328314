// Package store persists named configuration profiles in SQLite. Profile
// credentials are sealed with the operator passphrase before they touch the
// database and opened again on read.
package store

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound is returned when a profile is not found.
	ErrNotFound = errors.New("profile not found")

	// ErrDuplicateID is returned when creating a profile with an existing ID.
	ErrDuplicateID = errors.New("profile with this ID already exists")

	// ErrDuplicateName is returned when creating a profile with an existing name.
	ErrDuplicateName = errors.New("profile with this name already exists")

	// ErrPassphraseRequired is returned when opening a store without a
	// sealing passphrase.
	ErrPassphraseRequired = errors.New("sealing passphrase is required")

	// ErrConnectionFailed is returned when the database cannot be opened.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMigrationFailed is returned when database migration fails.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrInvalidData is returned when a stored profile cannot be decoded.
	ErrInvalidData = errors.New("invalid profile data")
)

// StoreError wraps errors with the failed operation and profile.
type StoreError struct {
	Op      string // e.g., "CreateProfile"
	ID      string // profile ID or name, if applicable
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.ID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, id, message string, err error) *StoreError {
	return &StoreError{
		Op:      op,
		ID:      id,
		Message: message,
		Err:     err,
	}
}
