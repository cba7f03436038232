package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the active GitHub host",
	Long: `Print the host gh is currently authenticated against.

GH_HOST wins when set. Otherwise each host in 'gh auth status' is checked
and the first one whose token matches gh's default token is reported.
Falls back to github.com.`,
	Args: cobra.NoArgs,
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	fmt.Fprintln(cmd.OutOrStdout(), env.svc.Hostname(cmd.Context()))
	return nil
}
