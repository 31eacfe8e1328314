package render

import (
	"strings"
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Orchestration File (docker-compose.yml)
// =============================================================================

// composeData is the typed view of a StackConfig that the compose template
// consumes. Only already-validated fields, no re-derived conditionals.
type composeData struct {
	ProjectName    string
	OdooVersion    string
	HTTPPort       int
	ChatPort       int
	OdooHTTPPort   int
	OdooChatPort   int
	DBName         string
	DBUser         string
	DBPassword     string
	PostgresPort   int
	ExposePostgres bool
	MemoryLimitGB  int
	ReservationGB  int
	EnableRedis    bool
	EnableNginx    bool
	PostgresImage  string
	RedisImage     string
	NginxImage     string
}

func newComposeData(cfg domain.StackConfig) composeData {
	// compose interpolation reads $ as a variable marker; $$ escapes a
	// literal dollar sign
	dbPassword := strings.ReplaceAll(cfg.DBPassword, "$", "$$")

	return composeData{
		ProjectName:    cfg.ProjectName,
		OdooVersion:    cfg.OdooVersion,
		HTTPPort:       cfg.HTTPPort,
		ChatPort:       cfg.ChatPort,
		OdooHTTPPort:   domain.OdooHTTPPort,
		OdooChatPort:   domain.OdooChatPort,
		DBName:         cfg.DBName,
		DBUser:         cfg.DBUser,
		DBPassword:     dbPassword,
		PostgresPort:   domain.PostgresPort,
		ExposePostgres: cfg.EnablePostgresPort,
		MemoryLimitGB:  cfg.MemoryLimitGB,
		ReservationGB:  cfg.MemoryReservationGB(),
		EnableRedis:    cfg.EnableRedis,
		EnableNginx:    cfg.EnableNginx,
		PostgresImage:  PostgresImage,
		RedisImage:     RedisImage,
		NginxImage:     NginxImage,
	}
}

var composeTmpl = template.Must(template.New("docker-compose.yml").Parse(`name: {{ .ProjectName }}

services:
  db:
    image: {{ .PostgresImage }}
    container_name: {{ .ProjectName }}-db
    environment:
      POSTGRES_DB: {{ .DBName }}
      POSTGRES_USER: {{ .DBUser }}
      # quoted so symbol-heavy generated secrets stay plain YAML strings
      POSTGRES_PASSWORD: "{{ .DBPassword }}"
      PGDATA: /var/lib/postgresql/data/pgdata
    volumes:
      - db-data:/var/lib/postgresql/data/pgdata
{{- if .ExposePostgres }}
    ports:
      - "{{ .PostgresPort }}:{{ .PostgresPort }}"
{{- end }}
    healthcheck:
      test: ["CMD-SHELL", "pg_isready -U {{ .DBUser }} -d {{ .DBName }}"]
      interval: 10s
      timeout: 5s
      retries: 5
    restart: unless-stopped

  web:
    image: odoo:{{ .OdooVersion }}
    container_name: {{ .ProjectName }}-web
    depends_on:
      db:
        condition: service_healthy
    ports:
      - "{{ .HTTPPort }}:{{ .OdooHTTPPort }}"
      - "{{ .ChatPort }}:{{ .OdooChatPort }}"
    volumes:
      - ./config:/etc/odoo
      - ./addons:/mnt/extra-addons
      - ./logs:/var/log/odoo
      - web-data:/var/lib/odoo
    deploy:
      resources:
        limits:
          memory: {{ .MemoryLimitGB }}G
        reservations:
          memory: {{ .ReservationGB }}G
    restart: unless-stopped
{{- if .EnableRedis }}

  redis:
    image: {{ .RedisImage }}
    container_name: {{ .ProjectName }}-redis
    volumes:
      - redis-data:/data
    restart: unless-stopped
{{- end }}
{{- if .EnableNginx }}

  nginx:
    image: {{ .NginxImage }}
    container_name: {{ .ProjectName }}-nginx
    depends_on:
      - web
    ports:
      - "80:80"
      - "443:443"
    volumes:
      - ./nginx/nginx.conf:/etc/nginx/nginx.conf:ro
      - ./nginx/ssl:/etc/nginx/ssl:ro
    restart: unless-stopped
{{- end }}

volumes:
  db-data:
  web-data:
{{- if .EnableRedis }}
  redis-data:
{{- end }}
`))

// Compose renders the container orchestration file. The web service's host
// ports are exactly the configured HTTP and chat ports; the database port is
// published iff the config asks for it; cache and proxy services appear iff
// their toggles are set.
//
// This is a pure function with no side effects.
func Compose(cfg domain.StackConfig) string {
	return mustRender(composeTmpl, newComposeData(cfg))
}
