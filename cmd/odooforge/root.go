package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odooforge/odooforge/internal/shell/store"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitValidationError = 2
	ExitStoreError      = 3
	ExitOutputError     = 4
	ExitVerifyError     = 5
)

// =============================================================================
// Application Wiring
// =============================================================================

// app carries the loaded configuration and logger shared by every command.
type app struct {
	config *Config
	logger *slog.Logger
}

// openStore opens the profile database with the resolved sealing passphrase.
// The caller owns the returned store and must Close it.
func (a *app) openStore() (store.Store, error) {
	passphrase, err := a.config.Data.ResolvePassphrase()
	if err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(a.config.Data.DSN, passphrase)
}

// newRootCmd wires the cobra root command.
func newRootCmd() *cobra.Command {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:   "odooforge",
		Short: "Generate self-contained Odoo docker deployment bundles",
		Long: `odooforge validates deployment parameters and renders a complete,
internally consistent docker deployment bundle: compose file, environment
file, Odoo configuration, setup script, and optional reverse-proxy config.
It never runs what it generates; the bundle is plain files you can read,
version, and deploy yourself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			a.config = cfg
			a.logger = SetupLogger(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(newGenerateCommand(a))
	root.AddCommand(newWizardCommand(a))
	root.AddCommand(newProfileCommand(a))
	root.AddCommand(newVerifyCommand(a))
	root.AddCommand(newVersionCommand())
	return root
}
