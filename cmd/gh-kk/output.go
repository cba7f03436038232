package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/spf13/cobra"
)

// outputJSON is set by the --json flag on commands that support it.
var outputJSON bool

// tokenPattern matches GitHub token formats (classic, OAuth, app, refresh
// and fine-grained personal access tokens).
var tokenPattern = regexp.MustCompile(`\b(gh[pousr]_[A-Za-z0-9_]{8,}|github_pat_[A-Za-z0-9_]{20,})\b`)

// outputAsJSON writes any value as formatted JSON to the command's stdout.
func outputAsJSON(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError prints an error to stderr, ensuring no tokens are leaked.
func outputError(w io.Writer, err error) {
	msg := scrubSensitiveData(err.Error())
	fmt.Fprintf(w, "Error: %s\n", msg)
}

// scrubSensitiveData redacts anything that looks like a GitHub token.
func scrubSensitiveData(msg string) string {
	return tokenPattern.ReplaceAllString(msg, "[REDACTED]")
}

// newProfileRenderer renders to the command's stdout, styled on a terminal.
func newProfileRenderer(cmd *cobra.Command, env *commandEnv) *ghkk.ProfileRenderer {
	r := &ghkk.ProfileRenderer{
		Out:     cmd.OutOrStdout(),
		Log:     env.log,
		Verbose: env.cfg.Verbose,
	}
	if isTTY() {
		r.Label = func(s string) string { return labelStyle.Render(s) }
		r.JSON = renderJSON
	}
	return r
}
