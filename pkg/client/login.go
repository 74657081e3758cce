package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"nasfs/pkg/log"
	"nasfs/pkg/models"

	"github.com/hashicorp/go-retryablehttp"
)

// Login authenticates with the server and captures the session token from
// the redirect response.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close login response body")
		}
	}()

	if resp.StatusCode != http.StatusSeeOther {
		return responseError(resp)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == models.SessionCookieName {
			c.token = cookie.Value
			return nil
		}
	}

	return fmt.Errorf("login succeeded but no session cookie was sent")
}

// Logout invalidates the session on the server and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: models.SessionCookieName, Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close logout response body")
		}
	}()

	c.token = ""

	if resp.StatusCode != http.StatusSeeOther && resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	return nil
}
