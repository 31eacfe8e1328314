package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// =============================================================================
// Service Images
// =============================================================================

// Pinned companion images. The Odoo image tag comes from the config; these
// three are fixed per generator release and bumped deliberately.
const (
	PostgresImage = "postgres:16"
	RedisImage    = "redis:7-alpine"
	NginxImage    = "nginx:1.27-alpine"
)

// =============================================================================
// All
// =============================================================================

// All renders every artifact that applies to the config, in bundle order.
// The proxy config is present iff the config enables the reverse proxy.
//
// This is a pure function with no side effects.
func All(cfg domain.StackConfig) domain.Artifacts {
	artifacts := domain.Artifacts{
		{Path: domain.PathCompose, Content: Compose(cfg)},
		{Path: domain.PathEnv, Content: EnvFile(cfg)},
		{Path: domain.PathOdooConf, Content: OdooConf(cfg)},
		{Path: domain.PathSetup, Content: SetupScript(cfg)},
		{Path: domain.PathGitignore, Content: Gitignore()},
	}
	if cfg.EnableNginx {
		artifacts = append(artifacts, domain.Artifact{
			Path:    domain.PathNginxConf,
			Content: NginxConf(cfg),
		})
	}
	return artifacts
}

// mustRender executes a parsed template over its typed data. The templates
// are package constants and the data structs are built from an already
// validated config, so execution cannot fail at runtime; if it does, that is
// a defect in this package and panicking is the correct report.
func mustRender(tmpl *template.Template, data any) string {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("render: executing %s template: %v", tmpl.Name(), err))
	}
	return b.String()
}
