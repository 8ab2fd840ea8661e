package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

// StatusError describes a non-2xx response from a remote endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Body)
}

// ClientError reports whether the remote rejected the request itself (4xx).
// Retrying such a request will not help.
func (e *StatusError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// NewStatusError consumes and closes resp.Body, keeping a prefix of it.
func NewStatusError(resp *http.Response) *StatusError {
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// CheckResponse returns nil for 2xx responses and a *StatusError otherwise.
// The body is closed in both cases.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	}
	return NewStatusError(resp)
}
