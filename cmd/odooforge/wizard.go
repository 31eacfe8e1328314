package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odooforge/odooforge/internal/core/archive"
	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/shell/wizard"
)

func newWizardCommand(a *app) *cobra.Command {
	var (
		outputDir string
		asArchive bool
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Collect deployment parameters interactively and render the bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := secret.New(secret.WithLogger(a.logger))
			wiz := wizard.New(generator)

			cfg, err := wiz.Run()
			if err != nil {
				return err
			}

			result, err := synth.Run(cfg, synth.Options{Secrets: generator})
			if err != nil && !errors.Is(err, archive.ErrPackaging) {
				return err
			}
			if err != nil {
				a.logger.Warn("bundle packaging failed, writing plain files instead",
					"error", err,
				)
				asArchive = false
			}

			if outputDir == "" {
				outputDir = a.config.Output.Dir
			}
			if err := a.writeBundle(cmd.OutOrStdout(), result, outputDir, asArchive); err != nil {
				return err
			}

			return a.offerProfileSave(cmd, wiz, cfg)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&asArchive, "archive", false, "write a zip archive instead of a directory tree")
	return cmd
}

// offerProfileSave asks whether to persist the collected parameters and
// stores them under the confirmed name.
func (a *app) offerProfileSave(cmd *cobra.Command, wiz *wizard.Wizard, cfg domain.StackConfig) error {
	save, name, err := wiz.ConfirmSave(cfg.ProjectName)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	profile := domain.NewProfile(name, cfg)
	if err := st.CreateProfile(cmd.Context(), profile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved\n", profile.Name)
	return nil
}
