package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the captured outcome of one external process invocation.
type Result struct {
	Output   string
	Error    string
	ExitCode int
}

// Success reports whether the process exited 0 and wrote something to stdout.
// Callers must check Success before trusting Output.
func (r Result) Success() bool {
	return r.ExitCode == 0 && strings.TrimSpace(r.Output) != ""
}

// Runner executes an external program and captures its result.
// Implementations never return errors; failures are encoded in the Result.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by real subprocesses.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts name with args, waits for it to exit, and returns trimmed
// stdout and stderr along with the exit code. Any failure to start or wait
// on the process yields exit code -1 with a message naming the command.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = launchFailure(name, args, fmt.Errorf("panic: %v", p))
		}
	}()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return launchFailure(name, args, err)
		}
	}

	return Result{
		Output:   strings.TrimSpace(stdout.String()),
		Error:    strings.TrimSpace(stderr.String()),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
}

func launchFailure(name string, args []string, err error) Result {
	return Result{
		Output:   "",
		Error:    fmt.Sprintf("An error occurred while running the process '%s' with arguments '%s': %v", name, strings.Join(args, " "), err),
		ExitCode: -1,
	}
}
