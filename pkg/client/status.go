package client

import (
	"context"
	"encoding/json"
	"net/http"

	"nasfs/pkg/log"
	"nasfs/pkg/models"
)

// Status fetches the server's version, uptime and storage usage.
func (c *Client) Status(ctx context.Context) (*models.ServerStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/status")
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close status response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var status models.ServerStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
