package main

import (
	"github.com/spf13/cobra"
)

// configurationCmd represents the configuration command
var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Inspect edgeauth configuration",
	Long: `Inspect the configuration edgeauth resolves from edgeauth.yml, .env
and EDGEAUTH_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: requireSubcommand,
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}
