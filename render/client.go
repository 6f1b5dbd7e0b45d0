package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-landwatch/types"
)

var (
	// ErrBadResponse covers non-2xx statuses and bodies that are not a JSON array.
	ErrBadResponse = errors.New("error loading results")
	// ErrTransport covers requests that never produced a response.
	ErrTransport = errors.New("connection error")
)

// SearchClient fetches the events for one search.
type SearchClient interface {
	Search(ctx context.Context, query, mode string) ([]types.PolicyEvent, error)
}

// HTTPSearchClient calls GET {endpoint}/api/search?q=...&mode=...
type HTTPSearchClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewHTTPSearchClient(endpoint string, timeout time.Duration) *HTTPSearchClient {
	return &HTTPSearchClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPSearchClient) Search(ctx context.Context, query, mode string) ([]types.PolicyEvent, error) {
	u := fmt.Sprintf("%s/api/search?q=%s&mode=%s", c.endpoint, url.QueryEscape(query), url.QueryEscape(mode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %s", ErrBadResponse, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: response is not an array", ErrBadResponse)
	}

	var events []types.PolicyEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return events, nil
}
