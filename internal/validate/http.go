package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Typed response shapes for the PravdaPlus HTTP contracts. Field presence is
// validated explicitly by the checks instead of pattern-matching raw bodies.

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewsItem is a single article as served by the news endpoints and accepted
// by the transform endpoint.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pub_date"`
	Category    string `json:"category"`
}

// TransformRequest is the body of POST /transform.
type TransformRequest struct {
	Article NewsItem `json:"article"`
	Style   string   `json:"style"`
}

// TransformedArticle is the rewritten article nested under "transformed".
type TransformedArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// TransformResponse is the body of a successful POST /transform. Transformed
// is a pointer so a missing wrapper field is distinguishable from an empty one.
type TransformResponse struct {
	Transformed *TransformedArticle `json:"transformed"`
	Style       string              `json:"style"`
	Status      string              `json:"status"`
}

const bodyExcerptLimit = 256

// excerpt trims a response body down to something safe to embed in a
// human-readable message.
func excerpt(body []byte) string {
	s := string(bytes.TrimSpace(body))
	if len(s) > bodyExcerptLimit {
		s = s[:bodyExcerptLimit] + "..."
	}
	return s
}

// Client issues blocking probe requests against the tunneled endpoints. Every
// request is bounded by the configured timeout; there is no retry.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a probe client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// get issues a GET and returns the status code and full body. A non-nil error
// is always a *ConnectivityError; status handling is left to the caller.
func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, &ConnectivityError{URL: url, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &ConnectivityError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &ConnectivityError{URL: url, Err: err}
	}
	return resp.StatusCode, body, nil
}

// postJSON issues a POST with a JSON payload and returns status and body,
// with the same error contract as get.
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request for %s: %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, &ConnectivityError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &ConnectivityError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &ConnectivityError{URL: url, Err: err}
	}
	return resp.StatusCode, body, nil
}

// getJSON issues a GET and decodes a 200 response into out. Errors follow the
// taxonomy: transport failures are *ConnectivityError, non-200 statuses are
// *ProtocolError, undecodable bodies are *ContentError.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	status, body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &ProtocolError{URL: url, StatusCode: status, Body: excerpt(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ContentError{URL: url, Reason: fmt.Sprintf("undecodable body: %v", err)}
	}
	return nil
}
