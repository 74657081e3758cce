package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"nasfs/pkg/fstree"
	"nasfs/pkg/log"
	"nasfs/pkg/models"
)

// Node is the result of a browse call. Exactly one of Listing and Entry is
// set: directories come back as a listing, everything else as the metadata
// of the single node.
type Node struct {
	Listing *models.Listing
	Entry   *fstree.Entry
}

// Browse fetches the listing or metadata for a path inside the caller's
// directory. An empty path names the directory root.
func (c *Client) Browse(ctx context.Context, path string) (*Node, error) {
	resp, err := c.do(ctx, http.MethodGet, fsURL(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close browse response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// A listing always carries a "path" key, a single node never does.
	var probe struct {
		Path *string `json:"path"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if probe.Path != nil {
		var listing models.Listing
		if err := json.Unmarshal(data, &listing); err != nil {
			return nil, err
		}
		return &Node{Listing: &listing}, nil
	}

	var entry fstree.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &Node{Entry: &entry}, nil
}
