package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/whoami"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	cfgVerbose    bool
	cfgGHPath     string
	cfgAPIVersion string
)

// errReported marks a failure whose diagnostic has already been written.
var errReported = errors.New("failure already reported")

// newService builds the whoami service; tests replace it to avoid spawning gh.
var newService = whoami.NewDefault

var rootCmd = &cobra.Command{
	Use:   "gh-kk",
	Short: "gh-kk - inspect the active GitHub CLI identity",
	Long: `gh-kk reads the gh CLI's authentication state and reports which host
and which GitHub user are currently active.

It never modifies gh's configuration; every command is read-only.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "Enable verbose output (global)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/gh-kk/gh-kk.yaml)")
	rootCmd.PersistentFlags().StringVar(&cfgGHPath, "gh-path", "", "Path to the gh executable (default: gh on PATH)")
	rootCmd.PersistentFlags().StringVar(&cfgAPIVersion, "api-version", "", "X-GitHub-Api-Version header value")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig layers defaults, the optional config file, environment
// variables and flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (ghkk.Config, error) {
	var cfg ghkk.Config
	v := viper.New()

	defaults := ghkk.DefaultConfig()
	v.SetDefault("gh_path", defaults.GHPath)
	v.SetDefault("host", "")
	v.SetDefault("api_version", defaults.APIVersion)
	v.SetDefault("user_agent", "gh-kk/"+version)
	v.SetDefault("http_timeout", "0s")
	v.SetDefault("verbose", false)
	v.SetDefault("debug_log_path", "")

	v.SetConfigName("gh-kk")
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "gh-kk"))
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must exist.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("ghkk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("host", ghkk.HostEnvVar); err != nil {
		return cfg, err
	}
	if err := v.BindEnv("debug_log_path", "GHKK_DEBUG_LOG"); err != nil {
		return cfg, err
	}

	flags := map[string]string{
		"verbose":     "verbose",
		"gh_path":     "gh-path",
		"api_version": "api-version",
	}
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, err
			}
		}
	}

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		switchHook,
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// switchHook decodes boolean settings from env and file strings. Besides
// strconv.ParseBool forms it accepts yes/no and on/off.
func switchHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return parseSwitch(data.(string))
}

func parseSwitch(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return false, nil
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%q is not a boolean (use 1/0, true/false, yes/no or on/off)", s)
	}
	return b, nil
}

// commandEnv is the per-invocation wiring every command handler receives.
type commandEnv struct {
	cfg  ghkk.Config
	log  *ghkk.DebugLogger
	svc  *whoami.Service
	errW *spinnerGuard
}

func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	errW := newSpinnerGuard(cmd.ErrOrStderr())
	logger, err := ghkk.NewDebugLogger(cfg.Verbose, cfg.DebugLogPath, errW)
	if err != nil {
		return nil, err
	}

	return &commandEnv{
		cfg:  cfg,
		log:  logger,
		svc:  newService(cfg, logger),
		errW: errW,
	}, nil
}

func (e *commandEnv) Close() error {
	return e.log.Close()
}
