// ABOUTME: HTTP client used to fetch documents referenced by URL in cook requests
// ABOUTME: Retries transient failures with exponential backoff and caps the body size

package standard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"recipe-cook-api/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "RecipeCook/1.0"

	// DefaultMaxBodyBytes caps a fetched document when no limit is given.
	DefaultMaxBodyBytes int64 = 10 << 20
)

// ErrBodyTooLarge is returned by a response body read past the limit.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client       *http.Client
	maxBodyBytes int64
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// maxBodyBytes <= 0 selects DefaultMaxBodyBytes.
func NewStandardHTTPClient(timeout time.Duration, maxBodyBytes int64) *StandardHTTPClient {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &StandardHTTPClient{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
	}
}

// Get performs an HTTP GET request, retrying network errors and 5xx answers.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/xml, text/xml;q=0.9, */*;q=0.5")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			resp = nil
			continue
		}
		if resp.StatusCode < 500 {
			break
		}
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		if attempt < maxRetries-1 {
			resp.Body.Close()
			resp = nil
		}
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       &limitedBody{r: io.LimitReader(resp.Body, c.maxBodyBytes+1), c: resp.Body, left: c.maxBodyBytes},
		headers:    resp.Header,
	}, nil
}

// limitedBody fails the read that crosses the limit instead of truncating.
type limitedBody struct {
	r    io.Reader
	c    io.Closer
	left int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.left -= int64(n)
	if b.left < 0 {
		return n + int(b.left), ErrBodyTooLarge
	}
	return n, err
}

func (b *limitedBody) Close() error { return b.c.Close() }

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

func (r *httpResponse) StatusCode() int { return r.statusCode }

func (r *httpResponse) Body() io.ReadCloser { return r.body }

func (r *httpResponse) Header(key string) string { return r.headers.Get(key) }
