package whoami

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/api"
	"github.com/hyperengineering/gh-kk/internal/process"
	"github.com/hyperengineering/gh-kk/internal/testutil"
)

// fakeUserClient records GetUser calls.
type fakeUserClient struct {
	body  []byte
	err   error
	calls int
	host  string
	token string
}

func (f *fakeUserClient) GetUser(_ context.Context, host, token string) ([]byte, error) {
	f.calls++
	f.host = host
	f.token = token
	return f.body, f.err
}

func newLogger(t *testing.T, verbose bool) (*ghkk.DebugLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := ghkk.NewDebugLogger(verbose, "", &buf)
	if err != nil {
		t.Fatalf("NewDebugLogger() error: %v", err)
	}
	return logger, &buf
}

func loggedInRunner() *testutil.ScriptedRunner {
	return testutil.NewScriptedRunner().
		On("auth status", process.Result{Error: "github.com\n  - Token: gho_****"}).
		OnOutput("auth token", "gho_default").
		OnOutput("auth token --hostname github.com", "gho_default")
}

func TestActiveUser_ReturnsBody(t *testing.T) {
	logger, stderr := newLogger(t, false)
	client := &fakeUserClient{body: []byte(`{"login":"octocat"}`)}
	svc := New(ghkk.Config{}, loggedInRunner(), client, logger)

	got := svc.ActiveUser(context.Background())
	if got != `{"login":"octocat"}` {
		t.Errorf("ActiveUser() = %q", got)
	}
	if client.host != "github.com" || client.token != "gho_default" {
		t.Errorf("GetUser(host=%q, token=%q), want github.com/gho_default", client.host, client.token)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no diagnostics, got: %s", stderr.String())
	}
}

func TestActiveUser_TokenFailureSkipsHTTP(t *testing.T) {
	logger, stderr := newLogger(t, false)
	runner := testutil.NewScriptedRunner().On("auth token", process.Result{Error: "error", ExitCode: 1})
	client := &fakeUserClient{}
	svc := New(ghkk.Config{}, runner, client, logger)

	if got := svc.ActiveUser(context.Background()); got != "" {
		t.Errorf("ActiveUser() = %q, want empty", got)
	}
	if client.calls != 0 {
		t.Errorf("GetUser called %d times, want 0", client.calls)
	}
	if runner.CallCount("auth status") != 0 {
		t.Error("host resolution should not run without a token")
	}
	if !strings.Contains(stderr.String(), "Failed to get GitHub token") {
		t.Errorf("expected token diagnostic, got: %s", stderr.String())
	}
	if lines := strings.Count(strings.TrimSpace(stderr.String()), "\n") + 1; lines != 1 {
		t.Errorf("expected exactly one diagnostic line, got %d: %s", lines, stderr.String())
	}
}

func TestActiveUser_HTTPStatusFailure(t *testing.T) {
	logger, stderr := newLogger(t, false)
	client := &fakeUserClient{err: &ghkk.APIError{Operation: "get_user", StatusCode: 401, Body: "Bad credentials", Err: errors.New("HTTP 401")}}
	svc := New(ghkk.Config{}, loggedInRunner(), client, logger)

	if got := svc.ActiveUser(context.Background()); got != "" {
		t.Errorf("ActiveUser() = %q, want empty", got)
	}
	if !strings.Contains(stderr.String(), "status 401") {
		t.Errorf("expected status diagnostic, got: %s", stderr.String())
	}
	if strings.Contains(stderr.String(), "Bad credentials") {
		t.Error("response body should only appear in verbose mode")
	}
}

func TestActiveUser_HTTPStatusFailure_VerboseIncludesBody(t *testing.T) {
	logger, stderr := newLogger(t, true)
	client := &fakeUserClient{err: &ghkk.APIError{Operation: "get_user", StatusCode: 404, Body: "Not Found", Err: errors.New("HTTP 404")}}
	svc := New(ghkk.Config{}, loggedInRunner(), client, logger)

	_ = svc.ActiveUser(context.Background())
	if !strings.Contains(stderr.String(), "Not Found") {
		t.Errorf("verbose output should include response body, got: %s", stderr.String())
	}
}

func TestActiveUser_HTTPStatusFailure_VerboseBodyLoggedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	logger, stderr := newLogger(t, true)
	client := api.NewHTTPClient(ghkk.Config{}, logger).WithBaseURL(func(string) string { return server.URL })
	svc := New(ghkk.Config{}, loggedInRunner(), client, logger)

	if got := svc.ActiveUser(context.Background()); got != "" {
		t.Errorf("ActiveUser() = %q, want empty", got)
	}
	if n := strings.Count(stderr.String(), "Bad credentials"); n != 1 {
		t.Errorf("response body logged %d times, want 1:\n%s", n, stderr.String())
	}
	if !strings.Contains(stderr.String(), "status 401") {
		t.Errorf("expected status diagnostic, got: %s", stderr.String())
	}
}

func TestActiveUser_NetworkFailure(t *testing.T) {
	logger, stderr := newLogger(t, false)
	client := &fakeUserClient{err: &ghkk.APIError{Operation: "get_user", Err: errors.New("dial tcp: connection refused")}}
	svc := New(ghkk.Config{}, loggedInRunner(), client, logger)

	if got := svc.ActiveUser(context.Background()); got != "" {
		t.Errorf("ActiveUser() = %q, want empty", got)
	}
	if !strings.Contains(stderr.String(), "Failed to reach GitHub API") {
		t.Errorf("expected network diagnostic, got: %s", stderr.String())
	}
}

func TestActiveUser_EnterpriseOverrideEndToEnd(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"login":"hubot"}`))
	}))
	defer server.Close()

	cfg := ghkk.Config{Host: "ghe.example.com"}
	runner := testutil.NewScriptedRunner().OnOutput("auth token --hostname ghe.example.com", "gho_ghe")
	client := api.NewHTTPClient(cfg, nil).WithBaseURL(func(host string) string {
		if host != "ghe.example.com" {
			t.Errorf("base URL requested for %q, want ghe.example.com", host)
		}
		return server.URL + "/api/v3"
	})
	logger, _ := newLogger(t, false)
	svc := New(cfg, runner, client, logger)

	if got := svc.ActiveUser(context.Background()); got != `{"login":"hubot"}` {
		t.Errorf("ActiveUser() = %q", got)
	}
	if gotPath != "/api/v3/user" {
		t.Errorf("path = %q, want /api/v3/user", gotPath)
	}
	if gotAuth != "Bearer gho_ghe" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if runner.CallCount("auth status") != 0 {
		t.Error("override should skip auth status")
	}
}

func TestToken_DegradesToEmpty(t *testing.T) {
	logger, stderr := newLogger(t, false)
	runner := testutil.NewScriptedRunner().On("auth token", process.Result{Error: "gh: not logged in", ExitCode: 4})
	svc := New(ghkk.Config{}, runner, &fakeUserClient{}, logger)

	if got := svc.Token(context.Background()); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
	if !strings.Contains(stderr.String(), "gh: not logged in") {
		t.Errorf("diagnostic should carry gh's error text, got: %s", stderr.String())
	}
}

func TestToken_VerbosityDoesNotChangeResult(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, _ := newLogger(t, verbose)
		runner := testutil.NewScriptedRunner().OnOutput("auth token", " gho_abc \n")
		svc := New(ghkk.Config{}, runner, &fakeUserClient{}, logger)

		if got := svc.Token(context.Background()); got != "gho_abc" {
			t.Errorf("verbose=%v: Token() = %q, want %q", verbose, got, "gho_abc")
		}
	}
}

func TestHostname_Delegates(t *testing.T) {
	logger, _ := newLogger(t, false)
	svc := New(ghkk.Config{}, loggedInRunner(), &fakeUserClient{}, logger)

	if got := svc.Hostname(context.Background()); got != "github.com" {
		t.Errorf("Hostname() = %q, want github.com", got)
	}
}

func TestGHVersion_DegradesToEmpty(t *testing.T) {
	logger, stderr := newLogger(t, false)
	runner := testutil.NewScriptedRunner()
	svc := New(ghkk.Config{}, runner, &fakeUserClient{}, logger)

	if got := svc.GHVersion(context.Background()); got != "" {
		t.Errorf("GHVersion() = %q, want empty", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("GHVersion failure should be silent outside verbose mode, got %q", stderr.String())
	}

	runner.OnOutput("--version", "gh version 2.62.0 (2024-11-14)")
	if got := svc.GHVersion(context.Background()); got != "2.62.0" {
		t.Errorf("GHVersion() = %q, want 2.62.0", got)
	}
}

func TestNew_NilClientPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil client) should panic")
		}
	}()
	New(ghkk.Config{}, testutil.NewScriptedRunner(), nil, nil)
}
