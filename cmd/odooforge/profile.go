package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odooforge/odooforge/internal/core/domain"
	"github.com/odooforge/odooforge/internal/core/secret"
	"github.com/odooforge/odooforge/internal/core/synth"
	"github.com/odooforge/odooforge/internal/core/validate"
	"github.com/odooforge/odooforge/internal/shell/store"
)

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved deployment profiles",
	}

	cmd.AddCommand(newProfileListCommand(a))
	cmd.AddCommand(newProfileShowCommand(a))
	cmd.AddCommand(newProfileSaveCommand(a))
	cmd.AddCommand(newProfileDeleteCommand(a))
	return cmd
}

func newProfileListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			profiles, err := st.ListProfiles(cmd.Context(), store.DefaultListOptions())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no profiles saved")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROJECT\tODOO\tUPDATED")
			for _, profile := range profiles {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					profile.Name,
					profile.Config.ProjectName,
					profile.Config.OdooVersion,
					profile.UpdatedAt.Format("2006-01-02 15:04"),
				)
			}
			return w.Flush()
		},
	}
}

func newProfileShowCommand(a *app) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			profile, err := st.GetProfileByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !reveal {
				profile.Config = profile.Config.Redacted()
			}

			data, err := json.MarshalIndent(profile, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "include the stored credentials in the output")
	return cmd
}

func newProfileSaveCommand(a *app) *cobra.Command {
	var (
		flags      stackFlags
		paramsPath string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Validate the given parameters and store them as a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.baseStack(cmd.Context(), "", paramsPath)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg)

			// Profiles always carry complete credentials
			generator := secret.New(secret.WithLogger(a.logger))
			var generated []string
			if cfg.DBPassword == "" {
				cfg.DBPassword = generator.GenerateDefault()
				generated = append(generated, "db_password")
			}
			if cfg.AdminPassword == "" {
				cfg.AdminPassword = generator.GenerateDefault()
				generated = append(generated, "admin_password")
			}

			if violations := validate.Validate(cfg); len(violations) > 0 {
				return &synth.ValidationError{Violations: violations}
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			profile := domain.NewProfile(args[0], cfg)
			if err := st.CreateProfile(cmd.Context(), profile); err != nil {
				return err
			}

			for _, field := range generated {
				a.logger.Info("credential generated", "field", field, "profile", profile.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved\n", profile.Name)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&paramsPath, "params", "", "start from a JSON parameters file")
	return cmd
}

func newProfileDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			profile, err := st.GetProfileByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteProfile(cmd.Context(), profile.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q deleted\n", profile.Name)
			return nil
		},
	}
}
