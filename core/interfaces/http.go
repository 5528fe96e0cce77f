package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches documents referenced by URL in cook requests.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)
}

// Response is the part of an HTTP response the cook service reads.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the value of the specified header, case-insensitively.
	Header(key string) string
}
