// Package verify cross-checks a rendered bundle against its configuration.
// This is part of the Functional Core - all functions are pure with no I/O.
//
// The checks parse the generated files back with real parsers (compose-go
// for the orchestration file) and confirm that every value the artifacts
// share agrees with the configuration and with each other: ports, service
// set, credentials, memory limits, proxy wiring. A clean bundle yields an
// empty finding list.
package verify

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Bundle shape errors
	ErrArtifactMissing    = errors.New("expected artifact is missing from the bundle")
	ErrArtifactUnexpected = errors.New("artifact should not be in the bundle")

	// Orchestration file errors
	ErrComposeInvalid = errors.New("orchestration file does not parse")
	ErrServiceSet     = errors.New("service set does not match the configuration")
	ErrPortMapping    = errors.New("published ports do not match the configuration")
	ErrLimitMismatch  = errors.New("resource limits do not match the configuration")

	// Cross-artifact errors
	ErrValueMismatch = errors.New("artifact value disagrees with the configuration")
	ErrProxyConfig   = errors.New("reverse proxy configuration is inconsistent")
)

// Finding wraps a verification failure with the artifact it was found in.
type Finding struct {
	Artifact string // e.g., "docker-compose.yml"
	Message  string
	Err      error
}

func (f *Finding) Error() string {
	if f.Artifact != "" {
		return fmt.Sprintf("%s: %s", f.Artifact, f.Message)
	}
	return f.Message
}

func (f *Finding) Unwrap() error {
	return f.Err
}

// NewFinding creates a new Finding.
func NewFinding(artifact, message string, err error) *Finding {
	return &Finding{
		Artifact: artifact,
		Message:  message,
		Err:      err,
	}
}
