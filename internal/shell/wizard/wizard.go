// Package wizard collects deployment parameters through interactive terminal
// forms. It is a thin adapter over the core rules: each field rejects bad
// input with the same check Validate applies to a finished config, and the
// collected config still runs through the full validator before it leaves
// Run. Navigation state never reaches the core.
package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/core/validate"
)

// Wizard walks an operator through the deployment parameters.
type Wizard struct {
	secrets *secret.Generator
}

// New returns a wizard generating credential suggestions with secrets,
// or a default generator when nil.
func New(secrets *secret.Generator) *Wizard {
	if secrets == nil {
		secrets = secret.New()
	}
	return &Wizard{secrets: secrets}
}

// Run presents the collection forms and returns the validated StackConfig.
// Credential fields start pre-filled with generated values, so accepting
// every suggestion yields a deployable config after naming the project.
func (w *Wizard) Run() (domain.StackConfig, error) {
	state := newFormState(domain.NewStackConfig(), w.secrets)

	form := huh.NewForm(
		projectGroup(&state),
		databaseGroup(&state),
		performanceGroup(&state),
		servicesGroup(&state),
	)

	if err := form.Run(); err != nil {
		return domain.StackConfig{}, fmt.Errorf("collecting parameters: %w", err)
	}

	cfg, err := state.toConfig()
	if err != nil {
		return domain.StackConfig{}, err
	}

	if violations := validate.Validate(cfg); len(violations) > 0 {
		return domain.StackConfig{}, &synth.ValidationError{Violations: violations}
	}
	return cfg, nil
}

// ConfirmSave asks whether the collected config should be stored as a named
// profile, suggesting defaultName. Returns the confirmation and the name.
func (w *Wizard) ConfirmSave(defaultName string) (bool, string, error) {
	var (
		save bool
		name = defaultName
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save these parameters as a profile?").
				Value(&save),
			huh.NewInput().
				Title("Profile Name").
				Value(&name).
				Validate(func(s string) error {
					if save && strings.TrimSpace(s) == "" {
						return fmt.Errorf("profile name is required")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return false, "", fmt.Errorf("collecting profile name: %w", err)
	}
	return save, strings.TrimSpace(name), nil
}

// =============================================================================
// Form State
// =============================================================================

// formState holds the string-typed bindings the form fields write into.
// Numeric fields stay strings until toConfig so inline validation can report
// non-numeric input before a range rule runs.
type formState struct {
	projectName string
	odooVersion string
	httpPort    string
	chatPort    string
	domain      string

	dbName        string
	dbUser        string
	dbPassword    string
	adminPassword string
	exposeDB      bool

	workers     string
	cronThreads string
	memoryGB    string
	logLevel    string

	enableRedis bool
	enableNginx bool
}

// newFormState seeds the bindings with the standard defaults and a generated
// value for each credential.
func newFormState(defaults domain.StackConfig, secrets *secret.Generator) formState {
	return formState{
		odooVersion:   defaults.OdooVersion,
		httpPort:      strconv.Itoa(defaults.HTTPPort),
		chatPort:      strconv.Itoa(defaults.ChatPort),
		dbName:        defaults.DBName,
		dbUser:        defaults.DBUser,
		dbPassword:    secrets.GenerateDefault(),
		adminPassword: secrets.GenerateDefault(),
		workers:       strconv.Itoa(defaults.Workers),
		cronThreads:   strconv.Itoa(defaults.CronThreads),
		memoryGB:      strconv.Itoa(defaults.MemoryLimitGB),
		logLevel:      string(defaults.LogLevel),
	}
}

// toConfig converts the collected strings into a StackConfig.
func (s formState) toConfig() (domain.StackConfig, error) {
	httpPort, err := strconv.Atoi(strings.TrimSpace(s.httpPort))
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("http port %q is not a number", s.httpPort)
	}
	chatPort, err := strconv.Atoi(strings.TrimSpace(s.chatPort))
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("chat port %q is not a number", s.chatPort)
	}
	workers, err := strconv.Atoi(strings.TrimSpace(s.workers))
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("workers %q is not a number", s.workers)
	}
	cronThreads, err := strconv.Atoi(strings.TrimSpace(s.cronThreads))
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("cron threads %q is not a number", s.cronThreads)
	}
	memoryGB, err := strconv.Atoi(strings.TrimSpace(s.memoryGB))
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("memory limit %q is not a number", s.memoryGB)
	}

	return domain.StackConfig{
		ProjectName:        strings.TrimSpace(s.projectName),
		OdooVersion:        strings.TrimSpace(s.odooVersion),
		HTTPPort:           httpPort,
		ChatPort:           chatPort,
		Domain:             strings.TrimSpace(s.domain),
		DBName:             strings.TrimSpace(s.dbName),
		DBUser:             strings.TrimSpace(s.dbUser),
		DBPassword:         s.dbPassword,
		AdminPassword:      s.adminPassword,
		EnablePostgresPort: s.exposeDB,
		Workers:            workers,
		CronThreads:        cronThreads,
		MemoryLimitGB:      memoryGB,
		LogLevel:           domain.LogLevel(s.logLevel),
		EnableRedis:        s.enableRedis,
		EnableNginx:        s.enableNginx,
	}, nil
}

// =============================================================================
// Form Groups
// =============================================================================

func projectGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Project Name").
			Description("Names the bundle folder, the compose project, and the containers.").
			Placeholder("my-shop").
			Value(&state.projectName).
			Validate(func(s string) error {
				err := validate.ProjectName(s)
				if err == nil {
					return nil
				}
				// Offer the normalized form when one exists.
				if slug := domain.Slugify(s); slug != "" && slug != strings.TrimSpace(s) {
					return fmt.Errorf("%w (try %q)", err, slug)
				}
				return err
			}),
		huh.NewSelect[string]().
			Title("Odoo Version").
			Options(
				huh.NewOption("17.0", "17.0"),
				huh.NewOption("16.0", "16.0"),
				huh.NewOption("15.0", "15.0"),
			).
			Value(&state.odooVersion),
		huh.NewInput().
			Title("HTTP Port").
			Description("Host port for the web interface.").
			Value(&state.httpPort).
			Validate(numericField("http_port", func(port int) error {
				return validate.Port("http_port", port)
			})),
		huh.NewInput().
			Title("Chat Port").
			Description("Host port for the longpolling endpoint.").
			Value(&state.chatPort).
			Validate(numericField("chat_port", func(port int) error {
				if err := validate.Port("chat_port", port); err != nil {
					return err
				}
				httpPort, err := strconv.Atoi(strings.TrimSpace(state.httpPort))
				if err != nil {
					return nil // http port field reports its own error
				}
				return validate.PortsDistinct(httpPort, port)
			})),
		huh.NewInput().
			Title("Public Domain").
			Description("Leave empty for a localhost deployment.").
			Placeholder("erp.example.com").
			Value(&state.domain).
			Validate(validate.Domain),
	)
}

func databaseGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Database Name").
			Value(&state.dbName).
			Validate(func(s string) error {
				return validate.Identifier("db_name", s)
			}),
		huh.NewInput().
			Title("Database User").
			Value(&state.dbUser).
			Validate(func(s string) error {
				return validate.Identifier("db_user", s)
			}),
		huh.NewInput().
			Title("Database Password").
			Description("Pre-filled with a generated value; replace it if you must.").
			Value(&state.dbPassword).
			Validate(func(s string) error {
				return validate.Secret("db_password", s)
			}),
		huh.NewInput().
			Title("Admin Password").
			Description("Odoo master password guarding the database manager.").
			Value(&state.adminPassword).
			Validate(func(s string) error {
				return validate.Secret("admin_password", s)
			}),
		huh.NewConfirm().
			Title("Expose PostgreSQL on the host?").
			Description("Publishes 5432 for external database tools.").
			Value(&state.exposeDB),
	)
}

func performanceGroup(state *formState) *huh.Group {
	levelOptions := make([]huh.Option[string], 0, len(domain.LogLevels()))
	for _, level := range domain.LogLevels() {
		levelOptions = append(levelOptions, huh.NewOption(string(level), string(level)))
	}

	return huh.NewGroup(
		huh.NewInput().
			Title("Workers").
			Description("0 runs threaded development mode; production uses 2+.").
			Value(&state.workers).
			Validate(numericField("workers", validate.Workers)),
		huh.NewInput().
			Title("Cron Threads").
			Value(&state.cronThreads).
			Validate(numericField("cron_threads", validate.CronThreads)),
		huh.NewInput().
			Title("Memory Limit (GB)").
			Description("Hard ceiling of the application container.").
			Value(&state.memoryGB).
			Validate(numericField("memory_limit_gb", validate.MemoryLimit)),
		huh.NewSelect[string]().
			Title("Log Level").
			Options(levelOptions...).
			Value(&state.logLevel),
	)
}

func servicesGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewConfirm().
			Title("Enable Redis?").
			Description("Adds a cache service and points session storage at it.").
			Value(&state.enableRedis),
		huh.NewConfirm().
			Title("Enable Nginx?").
			Description("Adds a reverse proxy and its configuration artifact.").
			Value(&state.enableNginx),
	)
}

// numericField adapts an int rule to a string form field.
func numericField(field string, rule func(int) error) func(string) error {
	return func(s string) error {
		value, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		return rule(value)
	}
}
