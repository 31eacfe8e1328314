package render

import (
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Bootstrap Script (setup.sh)
// =============================================================================

type setupData struct {
	ProjectName string
	EnableNginx bool
	AccessURL   string
	DBName      string
	DBUser      string
}

func newSetupData(cfg domain.StackConfig) setupData {
	return setupData{
		ProjectName: cfg.ProjectName,
		EnableNginx: cfg.EnableNginx,
		AccessURL:   cfg.AccessURL(),
		DBName:      cfg.DBName,
		DBUser:      cfg.DBUser,
	}
}

var setupTmpl = template.Must(template.New("setup.sh").Parse(`#!/bin/sh
# Bootstrap for the {{ .ProjectName }} deployment. Safe to re-run.
set -eu

echo "==> Checking prerequisites"
if ! command -v docker >/dev/null 2>&1; then
    echo "ERROR: docker is not installed. See https://docs.docker.com/get-docker/" >&2
    exit 1
fi
if ! docker info >/dev/null 2>&1; then
    echo "ERROR: the docker daemon is not running or not reachable." >&2
    exit 1
fi
if ! docker compose version >/dev/null 2>&1; then
    echo "ERROR: the docker compose plugin is missing." >&2
    exit 1
fi

echo "==> Creating directories"
mkdir -p config logs addons
{{- if .EnableNginx }}
mkdir -p nginx/ssl
{{- end }}

echo "==> Tightening permissions"
chmod 600 .env
chmod 640 config/odoo.conf

if ! grep -qx '\.env' .gitignore 2>/dev/null; then
    echo "WARNING: .env does not appear to be excluded from version control." >&2
fi

echo "==> Starting {{ .ProjectName }}"
docker compose up -d

echo "==> Container status"
docker compose ps

echo ""
echo "Odoo is starting at {{ .AccessURL }}"
echo "Database: {{ .DBName }} (user: {{ .DBUser }})"
echo "The first boot can take a minute while the database initializes."
`))

// SetupScript renders the idempotent bootstrap script: prerequisite checks
// that fail loudly with a non-zero exit, directory creation (including proxy
// directories iff the proxy is enabled), permission tightening on the
// secrets and config files, a best-effort check that the env file is
// ignored by version control, orchestration startup, and a status report.
// Every literal it prints comes from the same config the other artifacts
// rendered from.
//
// This is a pure function with no side effects.
func SetupScript(cfg domain.StackConfig) string {
	return mustRender(setupTmpl, newSetupData(cfg))
}
