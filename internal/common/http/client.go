// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is an http.Client with a hard upper bound on every round trip.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// DoWithContext sends req under ctx, additionally capped by the client
// timeout. The returned cancel func must be called once the body is read.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, func() {}, err
	}
	return resp, cancel, nil
}
