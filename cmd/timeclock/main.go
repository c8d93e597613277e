package main

import (
	"os"

	"github.com/spf13/cobra"

	"timeclock/internal/interfaces/cli/migrate"
	"timeclock/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timeclock",
		Short: "Timeclock - attendance punch verification service",
		Long:  `Timeclock records contractor clock punches, verifies presence over trusted networks or geofence, and reconstructs weekly timesheets.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
