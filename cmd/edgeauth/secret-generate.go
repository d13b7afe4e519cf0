package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/digest"
)

// secretGenerateCmd represents the secret > generate command
var secretGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a shared secret",
	Long: `
Generate a shared secret

Use this command to generate a new Base64-encoded random secret. Once
generated, the secret should be placed into the environment of every process
that signs or verifies tokens for the application.

Example:

$ export EDGEAUTH_SECRET="$(edgeauth secret generate)"
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		size, _ := cmd.Flags().GetInt("bytes")
		if err := generateSecret(os.Stdout, size); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate secret: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	secretCmd.AddCommand(secretGenerateCmd)
	secretGenerateCmd.Flags().Int("bytes", digest.DefaultSecretSize, "Number of random bytes")
}

func generateSecret(w io.Writer, size int) error {
	if size <= 0 {
		return fmt.Errorf("bytes must be positive, got %d", size)
	}
	secret, err := digest.GenerateSecret(size)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, secret)
	return err
}
