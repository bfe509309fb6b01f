package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xavierca1/agency-admin/internal/infra/database"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load operators and demo data",
		Long:  `Insert the admin users, the default service catalog and sample clients. Existing rows are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Seed(cmd.Context(), db); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			slog.InfoContext(cmd.Context(), "seed completed")
			return nil
		},
	}
}
