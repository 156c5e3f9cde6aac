// Package upstream fetches JSON pages from public stats APIs.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "statsboard-ingest/1.0"
	defaultMaxBody   = 8 << 20
	errorBodyPreview = 512
)

// Fetcher performs one GET and returns the body of a 200 response.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client is a sequential HTTP client with optional request spacing.
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    http.Header
	maxBody    int64
	rps        float64
	burst      int
	limiter    *rate.Limiter
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		headers:    make(http.Header),
		maxBody:    defaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rps > 0 {
		burst := c.burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(c.rps), burst)
	}
	return c
}

// Fetch issues a GET. Any transport failure or non-200 status is an error
// matching ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %v", ErrUnavailable, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(preview)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes from %s", ErrBodyTooLarge, c.maxBody, url)
	}
	return body, nil
}
