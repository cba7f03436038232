package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/spf13/cobra"
)

var (
	helpHeaderStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpCmdStyle    = lipgloss.NewStyle().Foreground(colorAccentLight)
)

// envVar documents one environment variable read by loadConfig.
type envVar struct {
	Name  string
	Usage string
}

// envVars is shown in the root command's help.
var envVars = []envVar{
	{ghkk.HostEnvVar, "Bare hostname to use instead of detecting one (no scheme or path)"},
	{"GHKK_GH_PATH", "Path to the gh executable"},
	{"GHKK_VERBOSE", "Verbose output: 1/0, true/false, yes/no or on/off"},
	{"GHKK_DEBUG_LOG", "Write verbose output to this file instead of stderr"},
	{"GHKK_API_VERSION", "X-GitHub-Api-Version header value"},
	{"GHKK_HTTP_TIMEOUT", "Timeout for the /user request, e.g. 10s"},
}

// styled applies style only when stdout is a terminal.
func styled(style lipgloss.Style) func(string) string {
	return func(s string) string {
		if isTTY() {
			return style.Render(s)
		}
		return s
	}
}

var helpTemplateFuncs = template.FuncMap{
	"header": styled(helpHeaderStyle),
	"cmd":    styled(helpCmdStyle),
	"muted":  styled(mutedStyle),
	"envHelp": func() string {
		width := 0
		for _, v := range envVars {
			width = max(width, len(v.Name))
		}
		var b strings.Builder
		for _, v := range envVars {
			fmt.Fprintf(&b, "  %s  %s\n", styled(helpCmdStyle)(fmt.Sprintf("%-*s", width, v.Name)), v.Usage)
		}
		return strings.TrimRight(b.String(), "\n")
	},
}

// helpTemplate lists examples and, on the root command only, the
// environment variables.
const helpTemplate = `{{with .Long}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{header "Usage:"}}
  {{cmd .UseLine}}{{if .HasAvailableSubCommands}} {{muted "[command]"}}{{end}}

{{end}}{{if gt (len .Aliases) 0}}{{header "Aliases:"}}
  {{.NameAndAliases}}

{{end}}{{if .HasExample}}{{header "Examples:"}}
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}{{header "Commands:"}}
{{range .Commands}}{{if .IsAvailableCommand}}  {{cmd (rpad .Name .NamePadding)}} {{.Short}}
{{end}}{{end}}
{{end}}{{if .HasAvailableLocalFlags}}{{header "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}{{header "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if not .HasParent}}{{header "Environment:"}}
{{envHelp}}

{{end}}{{if .HasAvailableSubCommands}}{{muted "Use"}} {{cmd (printf "%s [command] --help" .CommandPath)}} {{muted "for more information."}}
{{end}}`

// initHelp installs the styled help template on cmd and its subcommands.
func initHelp(cmd *cobra.Command) {
	for name, fn := range helpTemplateFuncs {
		cobra.AddTemplateFunc(name, fn)
	}
	applyHelpTemplate(cmd)
}

func applyHelpTemplate(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
	for _, subCmd := range cmd.Commands() {
		applyHelpTemplate(subCmd)
	}
}
