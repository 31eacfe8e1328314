// Package domain contains the core domain types for deployment bundle
// synthesis. This is part of the Functional Core - all functions are pure
// with no I/O.
package domain

import "fmt"

// =============================================================================
// Log Levels
// =============================================================================

// LogLevel is the application log verbosity written into the generated
// Odoo configuration.
type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

// IsValid checks if the log level is one of the accepted values.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug:
		return true
	default:
		return false
	}
}

// LogLevels returns all accepted log levels in display order.
func LogLevels() []LogLevel {
	return []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug}
}

// =============================================================================
// Service Names
// =============================================================================

// Compose service names used across every generated artifact. Renderers,
// the assembler, and the consistency checker all reference these constants
// so the files they produce can never disagree on a name.
const (
	ServiceDB    = "db"
	ServiceWeb   = "web"
	ServiceRedis = "redis"
	ServiceNginx = "nginx"
)

// Container-internal ports of the Odoo image. Host-side ports come from the
// config; these two are fixed by the image itself.
const (
	OdooHTTPPort = 8069
	OdooChatPort = 8072
)

// PostgresPort is the container-internal (and optionally host-exposed)
// database port.
const PostgresPort = 5432

// =============================================================================
// Reserved Names
// =============================================================================

// reservedProjectNames are identifiers that collide with generated service
// names, docker tooling keywords, or hostnames, and therefore cannot be used
// as a project name.
var reservedProjectNames = map[string]bool{
	"docker":         true,
	"docker-compose": true,
	"compose":        true,
	"default":        true,
	"odoo":           true,
	"postgres":       true,
	"postgresql":     true,
	"nginx":          true,
	"redis":          true,
	"localhost":      true,
}

// IsReservedName reports whether name collides with a generated service
// name or tooling keyword.
//
// This is a pure function with no side effects.
func IsReservedName(name string) bool {
	return reservedProjectNames[name]
}

// ReservedNames returns the reserved project names in unspecified order.
func ReservedNames() []string {
	names := make([]string, 0, len(reservedProjectNames))
	for name := range reservedProjectNames {
		names = append(names, name)
	}
	return names
}

// =============================================================================
// StackConfig
// =============================================================================

// StackConfig is the immutable snapshot of all deployment parameters for one
// synthesis run. It is created once from fully-collected input, passed by
// value, and owns no external resources. Every generated artifact is derived
// from a single StackConfig value so the files can never disagree on a
// shared parameter.
type StackConfig struct {
	// ProjectName names the top-level bundle folder, the compose project,
	// and the container-name prefix. Lowercase alphanumerics with internal
	// hyphens.
	ProjectName string `json:"project_name"`

	// OdooVersion selects the odoo image tag. Opaque, passed through.
	OdooVersion string `json:"odoo_version"`

	// HTTPPort is the host port mapped to the Odoo web interface.
	HTTPPort int `json:"http_port"`

	// ChatPort is the host port mapped to the Odoo longpolling endpoint.
	ChatPort int `json:"chat_port"`

	// Domain is the public hostname, or empty for localhost deployments.
	Domain string `json:"domain,omitempty"`

	DBName        string `json:"db_name"`
	DBUser        string `json:"db_user"`
	DBPassword    string `json:"db_password"`
	AdminPassword string `json:"admin_password"`

	// EnablePostgresPort exposes the database port on the host.
	EnablePostgresPort bool `json:"enable_postgres_port"`

	// Workers is the Odoo worker process count. 0 runs the threaded
	// development mode; production deployments use 2 or more.
	Workers int `json:"workers"`

	// CronThreads is the number of threads dedicated to scheduled jobs.
	CronThreads int `json:"cron_threads"`

	// MemoryLimitGB is the hard memory ceiling of the application
	// container, in whole gigabytes.
	MemoryLimitGB int `json:"memory_limit_gb"`

	LogLevel LogLevel `json:"log_level"`

	// EnableRedis adds a cache service and points session storage at it.
	EnableRedis bool `json:"enable_redis"`

	// EnableNginx adds a reverse-proxy service and its config artifact.
	EnableNginx bool `json:"enable_nginx"`
}

// NewStackConfig returns a StackConfig populated with the standard defaults.
// Identity fields (project name, domain, credentials) start empty and must
// be supplied by the caller.
func NewStackConfig() StackConfig {
	return StackConfig{
		OdooVersion:   "17.0",
		HTTPPort:      8069,
		ChatPort:      8072,
		DBName:        "odoo",
		DBUser:        "odoo",
		Workers:       2,
		CronThreads:   2,
		MemoryLimitGB: 2,
		LogLevel:      LogLevelInfo,
	}
}

// =============================================================================
// Derived Values
// =============================================================================
//
// Every renderer derives shared values through these accessors instead of
// recomputing them, which is what keeps the generated files mutually
// consistent.

// ServerName returns the hostname the deployment answers on: the configured
// domain, or "localhost" when no domain is set.
func (c StackConfig) ServerName() string {
	if c.Domain == "" {
		return "localhost"
	}
	return c.Domain
}

// AccessURL returns the browser URL of the deployed instance.
//
// Example:
//
//	StackConfig{HTTPPort: 8069}.AccessURL()  // "http://localhost:8069"
func (c StackConfig) AccessURL() string {
	return fmt.Sprintf("http://%s:%d", c.ServerName(), c.HTTPPort)
}

// ContainerName returns the container name for a compose service,
// prefixed with the project name.
//
// Example:
//
//	StackConfig{ProjectName: "acme"}.ContainerName(ServiceDB)  // "acme-db"
func (c StackConfig) ContainerName(service string) string {
	return c.ProjectName + "-" + service
}

const bytesPerGB = 1024 * 1024 * 1024

// MemoryHardBytes returns the hard worker memory limit in bytes:
// the configured gigabytes scaled to bytes.
func (c StackConfig) MemoryHardBytes() int64 {
	return int64(c.MemoryLimitGB) * bytesPerGB
}

// MemorySoftBytes returns the soft worker memory limit in bytes. The 80%
// fraction is taken on the gigabyte value and truncated to whole gigabytes
// BEFORE scaling to bytes, so a 1 GB limit yields a 0-byte soft limit and
// 2 GB yields 1 GiB. This truncation is preserved for compatibility with
// previously generated configurations; do not "fix" it without a migration
// plan for existing deployments.
func (c StackConfig) MemorySoftBytes() int64 {
	return int64(float64(c.MemoryLimitGB)*0.8) * bytesPerGB
}

// MemoryReservationGB returns the compose memory reservation in whole
// gigabytes: one below the hard limit, but never below one.
func (c StackConfig) MemoryReservationGB() int {
	if c.MemoryLimitGB <= 2 {
		return 1
	}
	return c.MemoryLimitGB - 1
}

// Redacted returns a copy with both secrets replaced by a fixed mask,
// suitable for logging and display.
func (c StackConfig) Redacted() StackConfig {
	masked := c
	if masked.DBPassword != "" {
		masked.DBPassword = "********"
	}
	if masked.AdminPassword != "" {
		masked.AdminPassword = "********"
	}
	return masked
}
