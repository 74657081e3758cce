package client

import (
	"context"
	"net/http"

	"nasfs/pkg/log"
)

// Delete removes a path inside the caller's directory. Directories are
// removed recursively by the server.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, fsURL(path))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close delete response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	return nil
}
