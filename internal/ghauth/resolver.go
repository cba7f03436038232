// Package ghauth resolves the gh auth token and the active auth host by
// driving the gh CLI through a process.Runner.
package ghauth

import (
	"context"
	"fmt"
	"strings"

	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/process"
)

// Resolver resolves tokens and hosts from the gh CLI.
type Resolver struct {
	runner process.Runner
	ghPath string
	host   string
	log    *ghkk.DebugLogger
}

// NewResolver creates a Resolver. runner must not be nil.
func NewResolver(cfg ghkk.Config, runner process.Runner, logger *ghkk.DebugLogger) *Resolver {
	if runner == nil {
		panic("ghauth: nil process runner")
	}
	cfg = cfg.WithDefaults()
	return &Resolver{
		runner: runner,
		ghPath: cfg.GHPath,
		host:   cfg.Host,
		log:    logger,
	}
}

// Override returns the GH_HOST override, or "" when detection is in effect.
func (r *Resolver) Override() string {
	return r.host
}

// Token returns the auth token for the overridden host, or for gh's default
// host when there is no override.
func (r *Resolver) Token(ctx context.Context) (string, error) {
	args := []string{"auth", "token"}
	source := "default"
	if r.host != "" {
		args = append(args, "--hostname", r.host)
		source = r.host
	}

	token, err := r.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ghkk.ErrNoToken, err)
	}

	r.log.Log("Successfully retrieved GitHub token (host: %s)", source)
	return token, nil
}

// TokenForHost returns the token gh holds for host.
func (r *Resolver) TokenForHost(ctx context.Context, host string) (string, error) {
	return r.run(ctx, "auth", "token", "--hostname", host)
}

// GHVersion returns the version of the gh binary, e.g. "2.62.0", parsed
// from the first line of `gh --version`.
func (r *Resolver) GHVersion(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(first)
	if len(fields) < 3 || fields[1] != "version" {
		return "", fmt.Errorf("unrecognized gh --version output: %q", first)
	}
	return fields[2], nil
}

// Hostname returns the active auth host. It never fails: every error path
// degrades to github.com.
func (r *Resolver) Hostname(ctx context.Context) (host string) {
	if r.host != "" {
		r.log.Log("Using %s override: %s", ghkk.HostEnvVar, r.host)
		return r.host
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Log("Host detection aborted (%v); using %s", p, ghkk.DefaultHost)
			host = ghkk.DefaultHost
		}
	}()

	return r.detectHost(ctx)
}

func (r *Resolver) detectHost(ctx context.Context) string {
	status := r.runner.Run(ctx, r.ghPath, "auth", "status")
	r.log.LogCommand(r.ghPath, []string{"auth", "status"}, status.ExitCode)

	if status.ExitCode != 0 {
		r.log.Log("gh auth status exited %d; using %s", status.ExitCode, ghkk.DefaultHost)
		return ghkk.DefaultHost
	}

	// gh writes the listing to stderr on older releases and stdout on newer ones.
	listing := status.Output
	if strings.TrimSpace(listing) == "" {
		listing = status.Error
	}
	if strings.TrimSpace(listing) == "" {
		r.log.Log("gh auth status produced no output; using %s", ghkk.DefaultHost)
		return ghkk.DefaultHost
	}

	defaultToken, err := r.run(ctx, "auth", "token")
	if err != nil {
		r.log.Log("Could not read default token (%v); using %s", err, ghkk.DefaultHost)
		return ghkk.DefaultHost
	}

	for _, candidate := range TokenHosts(listing) {
		token, err := r.TokenForHost(ctx, candidate)
		if err != nil {
			r.log.Log("No token for %s: %v", candidate, err)
			continue
		}
		if token == defaultToken {
			r.log.Log("Active host matched by token: %s", candidate)
			return candidate
		}
	}

	r.log.Log("No host matched the default token; using %s", ghkk.DefaultHost)
	return ghkk.DefaultHost
}

func (r *Resolver) run(ctx context.Context, args ...string) (string, error) {
	res := r.runner.Run(ctx, r.ghPath, args...)
	r.log.LogCommand(r.ghPath, args, res.ExitCode)

	if !res.Success() {
		return "", &ghkk.CommandError{
			Command:  r.ghPath,
			Args:     args,
			ExitCode: res.ExitCode,
			Stderr:   res.Error,
		}
	}
	return strings.TrimSpace(res.Output), nil
}
