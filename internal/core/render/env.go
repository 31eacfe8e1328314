package render

import (
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Environment File (.env)
// =============================================================================

// envData restates every value shared with the other artifacts. No
// timestamps or machine-specific values: the file must be byte-identical
// across renders of the same config.
type envData struct {
	ProjectName    string
	OdooVersion    string
	HTTPPort       int
	ChatPort       int
	Domain         string
	DBName         string
	DBUser         string
	DBPassword     string
	AdminPassword  string
	ExposePostgres bool
	Workers        int
	CronThreads    int
	MemoryLimitGB  int
	LogLevel       string
	EnableRedis    bool
	EnableNginx    bool
}

func newEnvData(cfg domain.StackConfig) envData {
	return envData{
		ProjectName:    cfg.ProjectName,
		OdooVersion:    cfg.OdooVersion,
		HTTPPort:       cfg.HTTPPort,
		ChatPort:       cfg.ChatPort,
		Domain:         cfg.Domain,
		DBName:         cfg.DBName,
		DBUser:         cfg.DBUser,
		DBPassword:     cfg.DBPassword,
		AdminPassword:  cfg.AdminPassword,
		ExposePostgres: cfg.EnablePostgresPort,
		Workers:        cfg.Workers,
		CronThreads:    cfg.CronThreads,
		MemoryLimitGB:  cfg.MemoryLimitGB,
		LogLevel:       string(cfg.LogLevel),
		EnableRedis:    cfg.EnableRedis,
		EnableNginx:    cfg.EnableNginx,
	}
}

var envTmpl = template.Must(template.New(".env").Parse(`# {{ .ProjectName }} deployment environment
# Keep this file out of version control.

PROJECT_NAME={{ .ProjectName }}
ODOO_VERSION={{ .OdooVersion }}

HTTP_PORT={{ .HTTPPort }}
CHAT_PORT={{ .ChatPort }}
DOMAIN={{ .Domain }}

DB_NAME={{ .DBName }}
DB_USER={{ .DBUser }}
DB_PASSWORD={{ .DBPassword }}
ADMIN_PASSWORD={{ .AdminPassword }}
POSTGRES_PORT_EXPOSED={{ .ExposePostgres }}

WORKERS={{ .Workers }}
CRON_THREADS={{ .CronThreads }}
MEMORY_LIMIT_GB={{ .MemoryLimitGB }}
LOG_LEVEL={{ .LogLevel }}

REDIS_ENABLED={{ .EnableRedis }}
NGINX_ENABLED={{ .EnableNginx }}
`))

// EnvFile renders the KEY=VALUE environment file. It restates the
// credentials, ports, and feature flags the orchestration file uses, all
// drawn from the same config so the two can never disagree.
//
// This is a pure function with no side effects.
func EnvFile(cfg domain.StackConfig) string {
	return mustRender(envTmpl, newEnvData(cfg))
}
