package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionInfo describes this binary and the gh binary it drives.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GHVersion string `json:"gh_version,omitempty"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the gh-kk build (version, commit, date), the Go runtime and
platform, and the version of the gh executable it calls.`,
	Example: `  gh kk version
  gh kk version --json | jq -r .gh_version`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := versionInfo{
		Version:  version,
		Commit:   commit,
		Date:     date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	// A broken config must not hide the build info; only the gh line is lost.
	if env, err := newCommandEnv(cmd); err == nil {
		info.GHVersion = env.svc.GHVersion(cmd.Context())
		_ = env.Close()
	}

	if outputJSON {
		return outputAsJSON(cmd, info)
	}

	gh := info.GHVersion
	if gh == "" {
		gh = "not found"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "gh-kk %s\n", info.Version)
	fmt.Fprintf(out, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(out, "  built:    %s\n", info.Date)
	fmt.Fprintf(out, "  gh:       %s\n", gh)
	fmt.Fprintf(out, "  go:       %s\n", info.Go)
	fmt.Fprintf(out, "  platform: %s\n", info.Platform)
	return nil
}
