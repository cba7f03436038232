package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "get-token",
	Short: "Get auth token from GitHub CLI",
	Long: `Print the token gh uses for the active host, or for GH_HOST when set.
The token is written to stdout only.`,
	Example: `  export GITHUB_TOKEN=$(gh kk get-token)`,
	Args:    cobra.NoArgs,
	RunE:    runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	token := env.svc.Token(cmd.Context())
	if token == "" {
		fmt.Fprintln(env.errW, "Failed to retrieve GitHub token.")
		return errReported
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
