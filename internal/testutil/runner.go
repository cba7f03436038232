// Package testutil provides deterministic stand-ins for the process runner
// so resolver logic can be exercised without a real gh binary.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/hyperengineering/gh-kk/internal/process"
)

// ScriptedRunner answers Run calls from a table keyed by the joined argument
// list (e.g. "auth token --hostname github.com"). Unknown invocations return
// a failed Result with exit code 1.
type ScriptedRunner struct {
	mu      sync.Mutex
	results map[string]process.Result
	calls   []string
}

// NewScriptedRunner returns an empty ScriptedRunner.
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{results: make(map[string]process.Result)}
}

// On registers the result returned for args.
func (r *ScriptedRunner) On(args string, res process.Result) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[args] = res
	return r
}

// OnOutput registers a successful invocation printing out on stdout.
func (r *ScriptedRunner) OnOutput(args, out string) *ScriptedRunner {
	return r.On(args, process.Result{Output: out})
}

// Run implements process.Runner.
func (r *ScriptedRunner) Run(_ context.Context, _ string, args ...string) process.Result {
	key := strings.Join(args, " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, key)

	if res, ok := r.results[key]; ok {
		return res
	}
	return process.Result{Error: "unexpected invocation: " + key, ExitCode: 1}
}

// Calls returns every invocation in order.
func (r *ScriptedRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns how many times args was invoked.
func (r *ScriptedRunner) CallCount(args string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == args {
			n++
		}
	}
	return n
}
