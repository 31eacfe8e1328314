package validate

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"unicode"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Rules & Blocklists
// =============================================================================

const (
	// MinPort is the lowest acceptable host port; everything below is
	// privileged or IANA system range.
	MinPort = 1024

	// MaxPort is the highest valid TCP port.
	MaxPort = 65535

	// MinSecretLength is the minimum length for both generated and
	// user-supplied credentials.
	MinSecretLength = 12

	// MinMemoryGB is the smallest workable container memory limit.
	MinMemoryGB = 1
)

// projectNamePattern accepts lowercase alphanumerics with internal single
// hyphens: "shop", "my-shop", "erp-2024".
var projectNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// hostnamePattern is an RFC 1123-ish hostname check: dot-separated labels of
// up to 63 characters that start and end alphanumeric. Single labels are
// accepted here; localhost and IP literals are rejected separately so the
// violation message can say why.
var hostnamePattern = regexp.MustCompile(`^([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9])(\.([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]))*$`)

// wellKnownPorts are host ports that belong to services people commonly run
// next to a deployment. Binding Odoo to one of these is always a mistake,
// even when the port is technically free.
var wellKnownPorts = map[int]string{
	1433:  "mssql",
	1521:  "oracle",
	2375:  "docker daemon",
	2376:  "docker daemon (tls)",
	3306:  "mysql",
	3389:  "rdp",
	5432:  "postgresql",
	5900:  "vnc",
	6379:  "redis",
	9200:  "elasticsearch",
	11211: "memcached",
	27017: "mongodb",
}

// =============================================================================
// Validate
// =============================================================================

// Validate checks a StackConfig against every parameter rule and returns the
// ordered list of violations, empty when the config is valid.
//
// The critical gate runs first: a blank project name, database password, or
// admin password (checked in that order) returns immediately with that single
// violation, so an obviously incomplete config does not drown the caller in
// derivative errors. Once all critical fields are present, every remaining
// rule runs and all violations accumulate.
//
// Every returned error is a *FieldError wrapping one of the package sentinel
// errors, so callers can match with errors.Is and attribute messages to
// fields.
//
// This is a pure function with no side effects.
func Validate(cfg domain.StackConfig) []error {
	if err := criticalGate(cfg); err != nil {
		return []error{err}
	}

	var violations []error
	violations = append(violations, checkProjectName(cfg.ProjectName)...)
	violations = append(violations, checkPorts(cfg.HTTPPort, cfg.ChatPort)...)
	violations = append(violations, checkDomain(cfg.Domain)...)
	violations = append(violations, checkIdentifier("db_name", cfg.DBName)...)
	violations = append(violations, checkIdentifier("db_user", cfg.DBUser)...)
	violations = append(violations, checkSecret("db_password", cfg.DBPassword)...)
	violations = append(violations, checkSecret("admin_password", cfg.AdminPassword)...)
	violations = append(violations, checkWorkers(cfg.Workers)...)
	violations = append(violations, checkCronThreads(cfg.CronThreads)...)
	violations = append(violations, checkMemory(cfg.MemoryLimitGB)...)
	violations = append(violations, checkLogLevel(cfg.LogLevel)...)
	return violations
}

// criticalGate returns the violation for the first blank critical field, or
// nil when all three are present.
func criticalGate(cfg domain.StackConfig) error {
	if strings.TrimSpace(cfg.ProjectName) == "" {
		return NewFieldError("project_name", "project name is required", ErrProjectNameRequired)
	}
	if strings.TrimSpace(cfg.DBPassword) == "" {
		return NewFieldError("db_password", "database password is required", ErrDBPasswordRequired)
	}
	if strings.TrimSpace(cfg.AdminPassword) == "" {
		return NewFieldError("admin_password", "admin password is required", ErrAdminPasswordRequired)
	}
	return nil
}

// =============================================================================
// Field Checks
// =============================================================================

func checkProjectName(name string) []error {
	var violations []error
	if !projectNamePattern.MatchString(name) {
		violations = append(violations, NewFieldError("project_name",
			"must be lowercase letters, digits, and internal hyphens (e.g. \"my-shop\")",
			ErrNamePattern))
	}
	if domain.IsReservedName(name) {
		violations = append(violations, NewFieldError("project_name",
			fmt.Sprintf("%q is a reserved name", name),
			ErrNameReserved))
	}
	return violations
}

func checkPorts(httpPort, chatPort int) []error {
	var violations []error
	violations = append(violations, checkPortRange("http_port", httpPort)...)
	violations = append(violations, checkPortRange("chat_port", chatPort)...)
	if httpPort == chatPort {
		violations = append(violations, NewFieldError("chat_port",
			"http and chat ports cannot be equal",
			ErrPortsEqual))
	}
	violations = append(violations, checkPortCollision("http_port", httpPort)...)
	violations = append(violations, checkPortCollision("chat_port", chatPort)...)
	return violations
}

func checkPortRange(field string, port int) []error {
	if port < MinPort || port > MaxPort {
		return []error{NewFieldError(field,
			fmt.Sprintf("must be between %d and %d (got %d)", MinPort, MaxPort, port),
			ErrPortRange)}
	}
	return nil
}

func checkPortCollision(field string, port int) []error {
	if service, taken := wellKnownPorts[port]; taken {
		return []error{NewFieldError(field,
			fmt.Sprintf("port %d is the well-known %s port", port, service),
			ErrPortWellKnown)}
	}
	return nil
}

func checkDomain(host string) []error {
	if host == "" {
		return nil // empty means localhost deployment
	}
	if strings.EqualFold(host, "localhost") || net.ParseIP(host) != nil {
		return []error{NewFieldError("domain",
			"must be a hostname, not localhost or an IP address; leave empty for local deployments",
			ErrDomainLiteral)}
	}
	if len(host) > 253 || !hostnamePattern.MatchString(host) {
		return []error{NewFieldError("domain",
			fmt.Sprintf("%q is not a valid hostname", host),
			ErrDomainPattern)}
	}
	return nil
}

func checkIdentifier(field, value string) []error {
	if strings.TrimSpace(value) == "" {
		return []error{NewFieldError(field, "cannot be empty", ErrIdentifierRequired)}
	}
	return nil
}

func checkSecret(field, secret string) []error {
	var violations []error
	if len(secret) < MinSecretLength {
		violations = append(violations, NewFieldError(field,
			fmt.Sprintf("must be at least %d characters (got %d)", MinSecretLength, len(secret)),
			ErrSecretTooShort))
	}
	if strings.IndexFunc(secret, unicode.IsSpace) >= 0 {
		violations = append(violations, NewFieldError(field,
			"cannot contain whitespace",
			ErrSecretWhitespace))
	}
	if allDigits(secret) {
		violations = append(violations, NewFieldError(field,
			"cannot be digits only",
			ErrSecretAllDigits))
	}
	return violations
}

// checkWorkers enforces the worker-count policy: 0 runs the threaded
// development mode and 2+ is a production setup, but exactly one worker
// starves cron jobs and longpolling, so it is rejected outright rather
// than treated as a low end of a range.
func checkWorkers(workers int) []error {
	if workers < 0 {
		return []error{NewFieldError("workers",
			fmt.Sprintf("cannot be negative (got %d)", workers),
			ErrNegativeWorkers)}
	}
	if workers == 1 {
		return []error{NewFieldError("workers",
			"a single worker cannot serve cron and longpolling; use 0 for development or 2+ for production",
			ErrSingleWorker)}
	}
	return nil
}

func checkCronThreads(threads int) []error {
	if threads < 0 {
		return []error{NewFieldError("cron_threads",
			fmt.Sprintf("cannot be negative (got %d)", threads),
			ErrNegativeCron)}
	}
	return nil
}

func checkMemory(gb int) []error {
	if gb < MinMemoryGB {
		return []error{NewFieldError("memory_limit_gb",
			fmt.Sprintf("must be at least %d GB (got %d)", MinMemoryGB, gb),
			ErrMemoryTooLow)}
	}
	return nil
}

func checkLogLevel(level domain.LogLevel) []error {
	if !level.IsValid() {
		return []error{NewFieldError("log_level",
			fmt.Sprintf("must be one of error, warn, info, debug (got %q)", string(level)),
			ErrUnknownLogLevel)}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
