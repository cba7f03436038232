package ghkk

import (
	"strings"
	"time"
)

// Well-known values for the public GitHub host.
const (
	DefaultHost       = "github.com"
	DefaultGHPath     = "gh"
	DefaultAPIVersion = "2022-11-28"
	publicAPIBaseURL  = "https://api.github.com"
)

// HostEnvVar overrides every host-detection step when set.
const HostEnvVar = "GH_HOST"

// Config configures gh-kk. It is built once by the caller and passed
// explicitly to every component.
type Config struct {
	// GHPath is the gh executable to invoke. Defaults to "gh" on PATH.
	GHPath string `json:"gh_path" yaml:"gh_path" mapstructure:"gh_path"`

	// Host is the GH_HOST override. Empty means detect the active host.
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// APIVersion is sent as X-GitHub-Api-Version.
	APIVersion string `json:"api_version" yaml:"api_version" mapstructure:"api_version"`

	// UserAgent identifies gh-kk to the API. Defaults to "gh-kk/<version>".
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// HTTPTimeout bounds the REST request. Zero uses the transport default.
	HTTPTimeout time.Duration `json:"http_timeout" yaml:"http_timeout" mapstructure:"http_timeout"`

	// Verbose narrates each resolution step and includes error detail.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// DebugLogPath is the path to write verbose logs.
	// Defaults to stderr if empty.
	DebugLogPath string `json:"debug_log_path" yaml:"debug_log_path" mapstructure:"debug_log_path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GHPath:     DefaultGHPath,
		APIVersion: DefaultAPIVersion,
		UserAgent:  "gh-kk/dev",
	}
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GHPath) == "" {
		return &ValidationError{Field: "GHPath", Message: "required: gh executable"}
	}
	if strings.ContainsAny(c.Host, "/ \t") {
		return &ValidationError{Field: "Host", Message: "must be a bare hostname"}
	}
	if c.HTTPTimeout < 0 {
		return &ValidationError{Field: "HTTPTimeout", Message: "must be non-negative"}
	}
	return nil
}

// WithDefaults fills in default values for unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()

	if c.GHPath == "" {
		c.GHPath = defaults.GHPath
	}
	if c.APIVersion == "" {
		c.APIVersion = defaults.APIVersion
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	c.Host = strings.TrimSpace(c.Host)

	return c
}

// IsPublicHost reports whether host is the public github.com host.
func IsPublicHost(host string) bool {
	return strings.EqualFold(host, DefaultHost)
}

// APIBaseURL returns the REST base URL for host: api.github.com for the
// public host, the /api/v3 prefix for Enterprise Server hosts.
func APIBaseURL(host string) string {
	if IsPublicHost(host) {
		return publicAPIBaseURL
	}
	return "https://" + host + "/api/v3"
}
