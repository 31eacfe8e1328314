package verify

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"

	"github.com/odooforge/odooforge/internal/core/domain"
)

// Container ports the services listen on inside the deployment network.
const (
	odooHTTPTarget = 8069
	odooChatTarget = 8072
	postgresTarget = 5432
)

// =============================================================================
// Orchestration File Checks
// =============================================================================

// checkCompose parses the orchestration file with compose-go and confirms
// the project it describes matches the configuration: service set, port
// publications, database credentials, and worker memory limits.
func checkCompose(cfg domain.StackConfig, artifacts domain.Artifacts) []error {
	artifact, ok := artifacts.Find(domain.PathCompose)
	if !ok {
		return []error{NewFinding(domain.PathCompose, "artifact not rendered", ErrArtifactMissing)}
	}

	project, err := loadProject(cfg.ProjectName, artifact.Content)
	if err != nil {
		return []error{NewFinding(domain.PathCompose, err.Error(), ErrComposeInvalid)}
	}

	var findings []error
	findings = append(findings, checkServiceSet(cfg, project)...)
	findings = append(findings, checkWebService(cfg, project)...)
	findings = append(findings, checkDBService(cfg, project)...)
	return findings
}

// loadProject parses compose YAML in memory. The fallback project name only
// applies when the file carries no name of its own.
func loadProject(fallbackName, content string) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(content), &dict); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax: %w", err)
	}
	if dict == nil {
		return nil, fmt.Errorf("empty document")
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(content),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName(fallbackName, false)
		opts.SkipValidation = false
		// Interpolate like the runtime would, so $$ escapes in generated
		// credentials resolve back to the literal values being checked.
		opts.SkipInterpolation = false
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// expectedServices returns the service names the configuration calls for,
// in bundle order.
func expectedServices(cfg domain.StackConfig) []string {
	services := []string{domain.ServiceDB, domain.ServiceWeb}
	if cfg.EnableRedis {
		services = append(services, domain.ServiceRedis)
	}
	if cfg.EnableNginx {
		services = append(services, domain.ServiceNginx)
	}
	return services
}

func checkServiceSet(cfg domain.StackConfig, project *types.Project) []error {
	var findings []error
	expected := expectedServices(cfg)

	wanted := make(map[string]bool, len(expected))
	for _, name := range expected {
		wanted[name] = true
		if _, ok := project.Services[name]; !ok {
			findings = append(findings, NewFinding(domain.PathCompose,
				fmt.Sprintf("service %q is missing", name),
				ErrServiceSet))
		}
	}

	extras := make([]string, 0, len(project.Services))
	for name := range project.Services {
		if !wanted[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		findings = append(findings, NewFinding(domain.PathCompose,
			fmt.Sprintf("service %q is not called for by the configuration", name),
			ErrServiceSet))
	}
	return findings
}

func checkWebService(cfg domain.StackConfig, project *types.Project) []error {
	web, ok := project.Services[domain.ServiceWeb]
	if !ok {
		return nil // already reported by checkServiceSet
	}

	var findings []error

	if !publishesPort(web, cfg.HTTPPort, odooHTTPTarget) {
		findings = append(findings, NewFinding(domain.PathCompose,
			fmt.Sprintf("web service does not publish %d:%d", cfg.HTTPPort, odooHTTPTarget),
			ErrPortMapping))
	}
	if !publishesPort(web, cfg.ChatPort, odooChatTarget) {
		findings = append(findings, NewFinding(domain.PathCompose,
			fmt.Sprintf("web service does not publish %d:%d", cfg.ChatPort, odooChatTarget),
			ErrPortMapping))
	}

	if !mountsTarget(web, "/etc/odoo") {
		findings = append(findings, NewFinding(domain.PathCompose,
			"web service does not mount the config folder at /etc/odoo",
			ErrValueMismatch))
	}

	findings = append(findings, checkWebLimits(cfg, web)...)
	return findings
}

func checkWebLimits(cfg domain.StackConfig, web types.ServiceConfig) []error {
	if web.Deploy == nil || web.Deploy.Resources.Limits == nil || web.Deploy.Resources.Reservations == nil {
		return []error{NewFinding(domain.PathCompose,
			"web service carries no memory limits",
			ErrLimitMismatch)}
	}

	var findings []error
	if limit := int64(web.Deploy.Resources.Limits.MemoryBytes); limit != cfg.MemoryHardBytes() {
		findings = append(findings, NewFinding(domain.PathCompose,
			fmt.Sprintf("web memory limit is %d bytes, configuration says %d", limit, cfg.MemoryHardBytes()),
			ErrLimitMismatch))
	}
	wantReservation := int64(cfg.MemoryReservationGB()) * 1024 * 1024 * 1024
	if reservation := int64(web.Deploy.Resources.Reservations.MemoryBytes); reservation != wantReservation {
		findings = append(findings, NewFinding(domain.PathCompose,
			fmt.Sprintf("web memory reservation is %d bytes, configuration says %d", reservation, wantReservation),
			ErrLimitMismatch))
	}
	return findings
}

func checkDBService(cfg domain.StackConfig, project *types.Project) []error {
	db, ok := project.Services[domain.ServiceDB]
	if !ok {
		return nil // already reported by checkServiceSet
	}

	var findings []error

	exposed := publishesPort(db, postgresTarget, postgresTarget)
	if cfg.EnablePostgresPort && !exposed {
		findings = append(findings, NewFinding(domain.PathCompose,
			"database port should be published but is not",
			ErrPortMapping))
	}
	if !cfg.EnablePostgresPort && exposed {
		findings = append(findings, NewFinding(domain.PathCompose,
			"database port is published but the configuration keeps it internal",
			ErrPortMapping))
	}

	findings = append(findings, checkDBEnvironment(cfg, db)...)
	return findings
}

func checkDBEnvironment(cfg domain.StackConfig, db types.ServiceConfig) []error {
	checks := []struct {
		key  string
		want string
	}{
		{"POSTGRES_DB", cfg.DBName},
		{"POSTGRES_USER", cfg.DBUser},
		{"POSTGRES_PASSWORD", cfg.DBPassword},
	}

	var findings []error
	for _, check := range checks {
		value, ok := db.Environment[check.key]
		if !ok || value == nil || *value != check.want {
			findings = append(findings, NewFinding(domain.PathCompose,
				fmt.Sprintf("database environment %s does not match the configuration", check.key),
				ErrValueMismatch))
		}
	}
	return findings
}

// publishesPort reports whether the service maps the published host port to
// the target container port.
func publishesPort(svc types.ServiceConfig, published, target int) bool {
	for _, p := range svc.Ports {
		if p.Published == strconv.Itoa(published) && int(p.Target) == target {
			return true
		}
	}
	return false
}

// mountsTarget reports whether any of the service's volumes land on the
// given container path.
func mountsTarget(svc types.ServiceConfig, target string) bool {
	for _, v := range svc.Volumes {
		if strings.TrimRight(v.Target, "/") == target {
			return true
		}
	}
	return false
}
