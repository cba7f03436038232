package ghkk

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by gh-kk.
var (
	// ErrCommandFailed is returned when the gh CLI exits non-zero or prints nothing.
	ErrCommandFailed = errors.New("gh command failed")

	// ErrNoToken is returned when no auth token could be resolved.
	ErrNoToken = errors.New("no GitHub token available")

	// ErrRequestFailed is returned when the REST API request does not succeed.
	ErrRequestFailed = errors.New("API request failed")

	// ErrInvalidProfile is returned when a user payload cannot be parsed.
	ErrInvalidProfile = errors.New("invalid user profile")
)

// ValidationError is returned when configuration validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// CommandError describes a failed gh invocation.
// Extractable via errors.As(). Unwraps to ErrCommandFailed.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s exited %d", e.Command, strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return ErrCommandFailed }

// APIError is returned when a REST call fails with details.
// StatusCode is 0 for transport failures. Supports Unwrap().
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("api: %s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequestFailed}
	}
	return []error{ErrRequestFailed, e.Err}
}
