package main

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"whoami"},
	Short:   "Show the active GitHub user",
	Long: `Resolve the active gh host and token, call the REST API's /user
endpoint, and print the authenticated user's profile.`,
	Example: `  gh kk user
  gh kk user -v
  GH_HOST=ghe.example.com gh kk whoami`,
	Args: cobra.NoArgs,
	RunE: runUser,
}

func runUser(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	var payload string
	_ = runWithSpinner(env.errW, env.cfg.Verbose, "Fetching active user", func() error {
		payload = env.svc.ActiveUser(cmd.Context())
		return nil
	})
	if payload == "" {
		return errReported
	}

	if !newProfileRenderer(cmd, env).Render([]byte(payload)) {
		return errReported
	}
	return nil
}
