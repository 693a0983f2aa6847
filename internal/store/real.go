package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is the real store client.
//
// The underlying http.Client has no timeout: a stalled request either
// completes or errors, and the supervisor restart is the recovery path.
type HTTPClient struct {
	url string
	hc  *http.Client
}

// NewHTTPClient creates a client for the given database URL,
// e.g. "http://stash.example.net:5984/hvac".
func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{
		url: url,
		hc:  &http.Client{},
	}
}

// Get performs the startup GET.
func (c *HTTPClient) Get(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, nil)
}

// Post transmits one report document.
func (c *HTTPClient) Post(ctx context.Context, body []byte) (Response, error) {
	return c.do(ctx, http.MethodPost, body)
}

func (c *HTTPClient) do(ctx context.Context, method string, body []byte) (Response, error) {
	op := "get"
	var rd io.Reader
	if method == http.MethodPost {
		op = "post"
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, rd)
	if err != nil {
		return Response{}, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Response{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{Op: op, Err: err}
	}

	return Response{
		Status: resp.StatusCode,
		Date:   resp.Header.Get("Date"),
		Body:   rb,
	}, nil
}
