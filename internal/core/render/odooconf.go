package render

import (
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Application Config (config/odoo.conf)
// =============================================================================

// RedisPort is the container-internal port of the optional cache service.
const RedisPort = 6379

type odooConfData struct {
	ProjectName     string
	AdminPassword   string
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	LogLevel        string
	Workers         int
	CronThreads     int
	MemoryHardBytes int64
	MemorySoftBytes int64
	ProxyMode       bool
	EnableRedis     bool
	RedisHost       string
	RedisPort       int
}

func newOdooConfData(cfg domain.StackConfig) odooConfData {
	return odooConfData{
		ProjectName:     cfg.ProjectName,
		AdminPassword:   cfg.AdminPassword,
		DBHost:          domain.ServiceDB,
		DBPort:          domain.PostgresPort,
		DBUser:          cfg.DBUser,
		DBPassword:      cfg.DBPassword,
		DBName:          cfg.DBName,
		LogLevel:        string(cfg.LogLevel),
		Workers:         cfg.Workers,
		CronThreads:     cfg.CronThreads,
		MemoryHardBytes: cfg.MemoryHardBytes(),
		MemorySoftBytes: cfg.MemorySoftBytes(),
		ProxyMode:       cfg.EnableNginx,
		EnableRedis:     cfg.EnableRedis,
		RedisHost:       domain.ServiceRedis,
		RedisPort:       RedisPort,
	}
}

var odooConfTmpl = template.Must(template.New("odoo.conf").Parse(`[options]
; {{ .ProjectName }} Odoo server configuration

admin_passwd = {{ .AdminPassword }}

db_host = {{ .DBHost }}
db_port = {{ .DBPort }}
db_user = {{ .DBUser }}
db_password = {{ .DBPassword }}
db_name = {{ .DBName }}
dbfilter = ^{{ .DBName }}$
list_db = False

addons_path = /mnt/extra-addons
data_dir = /var/lib/odoo
logfile = /var/log/odoo/odoo.log
log_level = {{ .LogLevel }}

workers = {{ .Workers }}
max_cron_threads = {{ .CronThreads }}
limit_memory_hard = {{ .MemoryHardBytes }}
limit_memory_soft = {{ .MemorySoftBytes }}
limit_time_cpu = 600
limit_time_real = 1200
proxy_mode = {{ if .ProxyMode }}True{{ else }}False{{ end }}

{{ if .EnableRedis -}}
; Shared sessions in the cache service
enable_redis = True
redis_host = {{ .RedisHost }}
redis_port = {{ .RedisPort }}
redis_dbindex = 1
{{- else -}}
; Sessions stay in local worker memory
{{- end }}
`))

// OdooConf renders the ini-style application configuration. Memory limits
// are expressed in bytes via the config's derived accessors, the database
// filter is scoped to exactly the configured database, and a cache section
// appears iff the cache toggle is set.
//
// This is a pure function with no side effects.
func OdooConf(cfg domain.StackConfig) string {
	return mustRender(odooConfTmpl, newOdooConfData(cfg))
}
