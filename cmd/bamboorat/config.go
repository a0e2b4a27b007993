package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/bamboorat/internal/config"
)

func newConfigCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the runtime configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report missing required settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			missing := cfg.Missing()
			for _, name := range missing {
				fmt.Fprintf(out, "missing: %s\n", name)
			}

			storage := "sqlite " + cfg.DBPath
			if cfg.DBDSN != "" {
				storage = "postgres"
			}
			fmt.Fprintf(out, "project:   %s\n", cfg.Project())
			fmt.Fprintf(out, "storage:   %s\n", storage)
			fmt.Fprintf(out, "snapshots: %t\n", cfg.SnapshotsEnabled())

			if len(missing) > 0 {
				return fmt.Errorf("%d required setting(s) missing", len(missing))
			}
			return nil
		},
	})
	return cmd
}
