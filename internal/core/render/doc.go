// Package render turns a validated StackConfig into the deployment bundle
// artifacts.
//
// This package contains the functional core rendering logic. Each artifact
// kind has one pure renderer: a deterministic function of the config, so
// deep-equal configs always produce byte-identical text. All renderers pull
// shared values (ports, names, credentials, derived limits) from the same
// StackConfig accessors, which is what keeps the generated files mutually
// consistent.
//
// Renderers never validate. They are only called on a config that already
// passed the validate package; feeding them anything else is a programming
// error, not a runtime condition they report.
//
// # Functions
//
//   - Compose: container orchestration file (docker-compose.yml)
//   - EnvFile: environment restatement (.env)
//   - OdooConf: application server configuration (config/odoo.conf)
//   - NginxConf: reverse-proxy configuration (nginx/nginx.conf)
//   - SetupScript: idempotent bootstrap script (setup.sh)
//   - Gitignore: version-control exclusions (.gitignore)
//   - All: every applicable artifact for a config, in bundle order
//
// # Usage
//
//	artifacts := render.All(cfg)
//	for _, a := range artifacts {
//	    fmt.Println(a.Path)
//	}
package render
