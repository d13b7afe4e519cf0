package main

import (
	"github.com/spf13/cobra"
)

// secretCmd represents the secret command
var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage shared secrets",
	Long:  `Manage the shared secrets used to sign and verify digest tokens.`,
	Args:  cobra.NoArgs,
	RunE:  requireSubcommand,
}

func init() {
	rootCmd.AddCommand(secretCmd)
}
