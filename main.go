package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reminder-engine",
		Short: "Immunization reminder engine",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
