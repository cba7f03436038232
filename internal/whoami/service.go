// Package whoami ties token resolution, host resolution and the REST client
// together into the degrade-to-empty operations the CLI and MCP server use.
package whoami

import (
	"context"
	"errors"

	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/api"
	"github.com/hyperengineering/gh-kk/internal/ghauth"
	"github.com/hyperengineering/gh-kk/internal/process"
)

// Service answers "who am I" questions against the gh CLI and the REST API.
// Every operation absorbs its own failures: it reports one diagnostic line
// and returns an empty (or default) value.
type Service struct {
	auth *ghauth.Resolver
	api  api.UserClient
	log  *ghkk.DebugLogger
}

// New creates a Service. runner and client must not be nil.
func New(cfg ghkk.Config, runner process.Runner, client api.UserClient, logger *ghkk.DebugLogger) *Service {
	if client == nil {
		panic("whoami: nil API client")
	}
	return &Service{
		auth: ghauth.NewResolver(cfg, runner, logger),
		api:  client,
		log:  logger,
	}
}

// NewDefault wires a Service to the real gh binary and GitHub API.
func NewDefault(cfg ghkk.Config, logger *ghkk.DebugLogger) *Service {
	return New(cfg, process.NewExecRunner(), api.NewHTTPClient(cfg, logger), logger)
}

// Token returns the resolved auth token, or "" after reporting the failure.
func (s *Service) Token(ctx context.Context) string {
	token, err := s.auth.Token(ctx)
	if err != nil {
		s.reportTokenError(err)
		return ""
	}
	return token
}

// Hostname returns the active auth host, github.com when undetermined.
func (s *Service) Hostname(ctx context.Context) string {
	return s.auth.Hostname(ctx)
}

// GHVersion returns the gh binary's version, or "" when it cannot be
// determined. Failures are only narrated in verbose mode.
func (s *Service) GHVersion(ctx context.Context) string {
	v, err := s.auth.GHVersion(ctx)
	if err != nil {
		s.log.LogError("gh_version", err)
		return ""
	}
	return v
}

// ActiveUser returns the raw /user JSON for the active account, or "" after
// reporting the failure. No HTTP request is made when there is no token.
func (s *Service) ActiveUser(ctx context.Context) string {
	token, err := s.auth.Token(ctx)
	if err != nil {
		s.reportTokenError(err)
		return ""
	}

	host := s.auth.Hostname(ctx)
	s.log.Log("Fetching active user from %s", ghkk.APIBaseURL(host))

	body, err := s.api.GetUser(ctx, host, token)
	if err != nil {
		s.reportAPIError(host, err)
		return ""
	}
	return string(body)
}

func (s *Service) reportTokenError(err error) {
	var cmdErr *ghkk.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		s.log.Error("Failed to get GitHub token. Error: %s", cmdErr.Stderr)
	} else {
		s.log.Error("Failed to get GitHub token. Error: %v", err)
	}
	s.log.LogError("auth_token", err)
}

func (s *Service) reportAPIError(host string, err error) {
	var apiErr *ghkk.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode != 0:
		s.log.Error("GitHub API request to %s failed with status %d", host, apiErr.StatusCode)
		if s.log.Enabled() && apiErr.Body != "" {
			s.log.Log("Response body: %s", apiErr.Body)
		}
	default:
		s.log.Error("Failed to reach GitHub API at %s: %v", host, err)
	}
	s.log.LogError("get_user", err)
}
