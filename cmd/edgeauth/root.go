package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/audit"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/config"
	applog "github.com/doodlesbykumbi/edgeauth-in-go/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "edgeauth",
	Short: "Sign and verify digest tokens",
	Long: `Sign and verify digest tokens.

Tokens carry a JSON payload signed with an HMAC over the application ID and
shared secret. Configuration is read from edgeauth.yml and the environment,
see "edgeauth configuration show".`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides configuration")
}

// loadConfig loads configuration and applies the settings shared by every
// command: log level and audit state.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	applog.Configure(applog.Config{Level: cfg.LogLevel})
	audit.SetEnabled(cfg.AuditEnabled)
	return cfg, nil
}

// requireSubcommand is the RunE of parent commands invoked without a
// subcommand.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	_ = cmd.Help()
	return fmt.Errorf("command %q requires a subcommand", cmd.Name())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
