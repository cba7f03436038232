// Package api talks to the GitHub REST API.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	ghkk "github.com/hyperengineering/gh-kk"
)

// Doer abstracts HTTP transport (allows substituting in tests).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserClient fetches the authenticated user's profile.
type UserClient interface {
	// GetUser returns the raw /user JSON for the account behind token on host.
	GetUser(ctx context.Context, host, token string) ([]byte, error)
}

// HTTPClient implements UserClient using net/http.
type HTTPClient struct {
	apiVersion string
	userAgent  string
	baseURL    func(host string) string
	httpClient Doer
	log        *ghkk.DebugLogger
}

// NewHTTPClient creates a GitHub REST client from cfg.
func NewHTTPClient(cfg ghkk.Config, logger *ghkk.DebugLogger) *HTTPClient {
	cfg = cfg.WithDefaults()
	return &HTTPClient{
		apiVersion: cfg.APIVersion,
		userAgent:  cfg.UserAgent,
		baseURL:    ghkk.APIBaseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		log:        logger,
	}
}

// WithHTTPClient sets a custom transport (for testing or custom timeouts).
func (c *HTTPClient) WithHTTPClient(d Doer) *HTTPClient {
	c.httpClient = d
	return c
}

// WithBaseURL overrides host-to-base-URL mapping (for testing against httptest).
func (c *HTTPClient) WithBaseURL(fn func(host string) string) *HTTPClient {
	c.baseURL = fn
	return c
}

func (c *HTTPClient) setHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-GitHub-Api-Version", c.apiVersion)
}

// maxErrorBody caps how much of a failed response is kept on the error.
const maxErrorBody = 4096

func newAPIError(op string, statusCode int, body []byte) *ghkk.APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &ghkk.APIError{
		Operation:  op,
		StatusCode: statusCode,
		Body:       string(body),
		Err:        fmt.Errorf("HTTP %d: %s", statusCode, http.StatusText(statusCode)),
	}
}

// GetUser issues GET <base>/user.
func (c *HTTPClient) GetUser(ctx context.Context, host, token string) ([]byte, error) {
	url := strings.TrimSuffix(c.baseURL(host), "/") + "/user"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ghkk.APIError{Operation: "get_user", Err: err}
	}
	c.setHeaders(req, token)
	c.log.LogRequest(req.Method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ghkk.APIError{Operation: "get_user", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ghkk.APIError{Operation: "get_user", StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The body travels on the error; callers decide whether to show it.
		c.log.LogResponse(resp.StatusCode, resp.Status, nil)
		return nil, newAPIError("get_user", resp.StatusCode, body)
	}

	c.log.LogResponse(resp.StatusCode, resp.Status, body)
	return body, nil
}
