package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/shell/writer"
)

// =============================================================================
// Stack Flags
// =============================================================================

// stackFlags binds one flag per deployment parameter so any subset can be
// overridden on top of a saved profile or the configured defaults.
type stackFlags struct {
	name          string
	odooVersion   string
	httpPort      int
	chatPort      int
	domain        string
	dbName        string
	dbUser        string
	dbPassword    string
	adminPassword string
	exposeDB      bool
	workers       int
	cronThreads   int
	memoryGB      int
	logLevel      string
	redis         bool
	nginx         bool
}

func (f *stackFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "project name (lowercase letters, digits, hyphens)")
	flags.StringVar(&f.odooVersion, "odoo-version", "17.0", "odoo image version")
	flags.IntVar(&f.httpPort, "http-port", 8069, "host port for the web interface")
	flags.IntVar(&f.chatPort, "chat-port", 8072, "host port for the longpolling endpoint")
	flags.StringVar(&f.domain, "domain", "", "public hostname (empty for localhost)")
	flags.StringVar(&f.dbName, "db-name", "odoo", "postgres database name")
	flags.StringVar(&f.dbUser, "db-user", "odoo", "postgres user")
	flags.StringVar(&f.dbPassword, "db-password", "", "database password (generated when empty)")
	flags.StringVar(&f.adminPassword, "admin-password", "", "odoo master password (generated when empty)")
	flags.BoolVar(&f.exposeDB, "expose-db", false, "publish postgres on the host")
	flags.IntVar(&f.workers, "workers", 2, "worker processes (0 for development mode)")
	flags.IntVar(&f.cronThreads, "cron-threads", 2, "cron threads")
	flags.IntVar(&f.memoryGB, "memory-gb", 2, "container memory limit in whole GB")
	flags.StringVar(&f.logLevel, "log-level", "info", "odoo log level (error|warn|info|debug)")
	flags.BoolVar(&f.redis, "redis", false, "enable redis session store")
	flags.BoolVar(&f.nginx, "nginx", false, "enable nginx reverse proxy")
}

// apply overlays the flags the user actually set onto cfg, leaving the rest
// to the profile or configured defaults underneath.
func (f *stackFlags) apply(flags *pflag.FlagSet, cfg *domain.StackConfig) {
	if flags.Changed("name") {
		cfg.ProjectName = f.name
	}
	if flags.Changed("odoo-version") {
		cfg.OdooVersion = f.odooVersion
	}
	if flags.Changed("http-port") {
		cfg.HTTPPort = f.httpPort
	}
	if flags.Changed("chat-port") {
		cfg.ChatPort = f.chatPort
	}
	if flags.Changed("domain") {
		cfg.Domain = f.domain
	}
	if flags.Changed("db-name") {
		cfg.DBName = f.dbName
	}
	if flags.Changed("db-user") {
		cfg.DBUser = f.dbUser
	}
	if flags.Changed("db-password") {
		cfg.DBPassword = f.dbPassword
	}
	if flags.Changed("admin-password") {
		cfg.AdminPassword = f.adminPassword
	}
	if flags.Changed("expose-db") {
		cfg.EnablePostgresPort = f.exposeDB
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("cron-threads") {
		cfg.CronThreads = f.cronThreads
	}
	if flags.Changed("memory-gb") {
		cfg.MemoryLimitGB = f.memoryGB
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = domain.LogLevel(f.logLevel)
	}
	if flags.Changed("redis") {
		cfg.EnableRedis = f.redis
	}
	if flags.Changed("nginx") {
		cfg.EnableNginx = f.nginx
	}
}

// baseStack builds the starting StackConfig for a command: a saved profile,
// a parameters file, or the configured defaults.
func (a *app) baseStack(ctx context.Context, profileName, paramsPath string) (domain.StackConfig, error) {
	if profileName != "" && paramsPath != "" {
		return domain.StackConfig{}, errors.New("--profile and --params are mutually exclusive")
	}
	if paramsPath != "" {
		return loadParams(paramsPath)
	}
	if profileName == "" {
		return a.config.Defaults.StackConfig(), nil
	}

	st, err := a.openStore()
	if err != nil {
		return domain.StackConfig{}, err
	}
	defer st.Close()

	profile, err := st.GetProfileByName(ctx, profileName)
	if err != nil {
		return domain.StackConfig{}, err
	}
	return profile.Config, nil
}

// loadParams reads a StackConfig from a JSON parameters file. Fields absent
// from the file keep the standard defaults.
func loadParams(path string) (domain.StackConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StackConfig{}, fmt.Errorf("reading params file: %w", err)
	}
	cfg := domain.NewStackConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.StackConfig{}, fmt.Errorf("parsing params file %s: %w", path, err)
	}
	return cfg, nil
}

// =============================================================================
// Generate Command
// =============================================================================

func newGenerateCommand(a *app) *cobra.Command {
	var (
		flags       stackFlags
		profileName string
		paramsPath  string
		outputDir   string
		asArchive   bool
		printOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "generate [project-name]",
		Short: "Render a deployment bundle from flags, a profile, or a params file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.baseStack(cmd.Context(), profileName, paramsPath)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg)
			if len(args) == 1 {
				cfg.ProjectName = args[0]
			}

			generator := secret.New(secret.WithLogger(a.logger))
			result, err := synth.Run(cfg, synth.Options{Secrets: generator})
			if err != nil && !errors.Is(err, archive.ErrPackaging) {
				return err
			}
			packagingErr := err
			if packagingErr != nil {
				a.logger.Warn("bundle packaging failed, writing plain files instead",
					"error", packagingErr,
				)
			}

			for _, field := range result.Generated {
				a.logger.Info("credential generated",
					"field", field,
					"note", "value written to the bundle .env",
				)
			}

			if printOnly {
				return printArtifacts(cmd.OutOrStdout(), result.Artifacts)
			}

			if outputDir == "" {
				outputDir = a.config.Output.Dir
			}
			return a.writeBundle(cmd.OutOrStdout(), result, outputDir, asArchive && packagingErr == nil)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&profileName, "profile", "", "start from a saved profile")
	cmd.Flags().StringVar(&paramsPath, "params", "", "start from a JSON parameters file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&asArchive, "archive", false, "write a zip archive instead of a directory tree")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the artifacts to stdout instead of writing")
	return cmd
}

// writeBundle materializes a synthesis result as an archive file or a
// directory tree and prints where it landed.
func (a *app) writeBundle(out io.Writer, result synth.Result, outputDir string, asArchive bool) error {
	if asArchive {
		path := filepath.Join(outputDir, result.Config.ProjectName+".zip")
		if err := writer.WriteArchive(path, result.Archive); err != nil {
			return err
		}
		fmt.Fprintf(out, "Bundle archive written to %s\n", path)
		fmt.Fprintf(out, "Extract it, run ./setup.sh, then open %s\n", result.Config.AccessURL())
		return nil
	}

	manifest, entries, err := archive.Plan(result.Artifacts, result.Config)
	if err != nil {
		return err
	}
	root, err := writer.WriteTree(outputDir, manifest, entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Bundle written to %s\n", root)
	fmt.Fprintf(out, "Run %s, then open %s\n", filepath.Join(root, "setup.sh"), result.Config.AccessURL())
	return nil
}

// printArtifacts writes every artifact to out with a path banner, in
// bundle order.
func printArtifacts(out io.Writer, artifacts domain.Artifacts) error {
	for i, artifact := range artifacts {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "# ----- %s -----\n%s", artifact.Path, artifact.Content); err != nil {
			return err
		}
	}
	return nil
}
