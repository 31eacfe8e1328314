package validate

import (
	"strings"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Per-Field Entry Points
// =============================================================================
//
// Interactive collection rejects a value at input time with the same rule
// that Validate would apply to the finished config. Each function checks one
// field and returns the first violation, nil when the value passes. Validate
// remains the authority on a whole config; these never replace the final run.

// ProjectName checks a project name on its own.
//
// Example:
//
//	if err := validate.ProjectName("my-shop"); err != nil {
//	    // reject the input
//	}
func ProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewFieldError("project_name", "project name is required", ErrProjectNameRequired)
	}
	return first(checkProjectName(name))
}

// Port checks one host port against the range and well-known-service rules.
func Port(field string, port int) error {
	if err := first(checkPortRange(field, port)); err != nil {
		return err
	}
	return first(checkPortCollision(field, port))
}

// PortsDistinct rejects an equal http/chat port pair.
func PortsDistinct(httpPort, chatPort int) error {
	if httpPort == chatPort {
		return NewFieldError("chat_port", "http and chat ports cannot be equal", ErrPortsEqual)
	}
	return nil
}

// Domain checks a public hostname. Empty passes (localhost deployment).
func Domain(host string) error {
	return first(checkDomain(host))
}

// Identifier checks a required free-form identifier such as db_name.
func Identifier(field, value string) error {
	return first(checkIdentifier(field, value))
}

// Secret checks one credential value against the shared secret rules.
func Secret(field, value string) error {
	return first(checkSecret(field, value))
}

// Workers checks a worker count against the worker policy.
func Workers(count int) error {
	return first(checkWorkers(count))
}

// CronThreads checks a cron thread count.
func CronThreads(count int) error {
	return first(checkCronThreads(count))
}

// MemoryLimit checks a memory ceiling in whole gigabytes.
func MemoryLimit(gb int) error {
	return first(checkMemory(gb))
}

// Level checks a log level value.
func Level(level domain.LogLevel) error {
	return first(checkLogLevel(level))
}

// first returns the leading violation of a check, nil when the check passed.
func first(violations []error) error {
	if len(violations) == 0 {
		return nil
	}
	return violations[0]
}
