package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "agency-admin",
		Short:        "Agency admin API",
		Long:         `Back office for the agency: clients, service catalog, contracts, payments and the dashboard.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newWorkerCommand(),
		newMarkOverdueCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
