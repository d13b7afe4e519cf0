package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/audit"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/digest"
	applog "github.com/doodlesbykumbi/edgeauth-in-go/pkg/log"
)

// errNotVerified is returned when the token was processed but did not verify.
var errNotVerified = errors.New("token not verified")

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [token]",
	Short: "Verify a digest token",
	Long: `Verify a digest token and print the result.

The token is read from the first argument, or from the first line of stdin
when no argument is given. The command exits with status 1 unless the token
verified.

Example:
  edgeauth verify "DIGEST:eyJhcHBsaWNhdGlvbklkIjoi..."
  edgeauth sign | edgeauth verify --output json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to verify token: %v\n", err)
			os.Exit(1)
		}

		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			secret = cfg.Secret
		}
		output, _ := cmd.Flags().GetString("output")

		encoded, err := tokenArgument(args, os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to verify token: %v\n", err)
			os.Exit(1)
		}

		if err := runVerify(os.Stdout, secret, encoded, output); err != nil {
			if !errors.Is(err, errNotVerified) {
				fmt.Fprintf(os.Stderr, "Failed to verify token: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("secret", "", "Shared secret (defaults to configuration)")
	verifyCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func tokenArgument(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no token given")
	}
	return line, nil
}

func runVerify(stdout io.Writer, secret, encoded, output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	logger := applog.WithComponent("verify")

	result := digest.VerifyAndDecode(secret, encoded)
	audit.Log(audit.TokenVerifiedEvent{
		ApplicationID: result.ApplicationID(),
		Code:          result.Code,
	})

	event := logger.Debug()
	if result.Code == digest.CodeServerError {
		event = logger.Warn().Str("message", result.Message)
	}
	event.Str("code", result.Code.String()).Msg("verified token")

	if output == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		writeResultText(stdout, result)
	}

	if !result.Verified {
		return errNotVerified
	}
	return nil
}

func writeResultText(w io.Writer, result digest.Result) {
	fmt.Fprintf(w, "%-16s %t\n", "Verified:", result.Verified)
	fmt.Fprintf(w, "%-16s %s\n", "Code:", result.Code)
	if result.Message != "" {
		fmt.Fprintf(w, "%-16s %s\n", "Message:", result.Message)
	}
	if result.Value == nil {
		return
	}
	for _, key := range result.Value.Keys() {
		value, _ := result.Value.Get(key)
		formatted, err := json.Marshal(value)
		if err != nil {
			formatted = []byte(fmt.Sprint(value))
		}
		fmt.Fprintf(w, "%-16s %s\n", key+":", formatted)
	}
}
