package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 64 * 1024

// APIError is a non-success response from the server, decoded from the
// JSON error body when one was sent.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e APIError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("server returned %d: %s (%s)", e.StatusCode, e.Message, e.Path)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the server rejected the session.
func (e APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the requested path does not exist.
func (e APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// responseError turns a non-success response into an APIError. Auth
// failures carry an HTML login page instead of JSON, so decode failures
// fall back to the status text.
func responseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
		body.Path = ""
	}

	return APIError{
		StatusCode: resp.StatusCode,
		Message:    body.Error,
		Path:       body.Path,
	}
}
