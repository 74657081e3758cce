// Package client implements the HTTP client used by the command line tools
// to talk to a nasd server. Connection failures are retried, server error
// responses are returned as-is.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nasfs/pkg/models"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
	defaultTimeout      = 30 * time.Second
)

// Client talks to one nasd server. The zero value is not usable, call New.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	token   string
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.Logger = nil // Disable retryablehttp logging
	client.HTTPClient.Timeout = defaultTimeout
	// Custom retry policy: only retry on connection/timeout errors, not HTTP errors
	client.CheckRetry = connectionRetryPolicy
	// The login redirect carries the session cookie, so redirects are
	// surfaced instead of followed.
	client.HTTPClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    client,
	}
}

// SetToken installs a previously saved session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// do sends one request with the session cookie attached.
func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: models.SessionCookieName, Value: c.token})
	}
	return c.http.Do(req)
}

// connectionRetryPolicy only retries on connection/timeout errors, never on
// HTTP status errors. A 409 or 500 from the server must reach the caller
// instead of being retried into a generic failure.
func connectionRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil {
		return false, nil
	}
	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error
	}
	return false, nil
}

// fsURL builds the /fs URL for a user path, escaping each segment.
func fsURL(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/fs"
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/fs/" + strings.Join(segments, "/")
}
