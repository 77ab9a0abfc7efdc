package deepinfra

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client) error

// WithBaseURL overrides the API base URL, e.g. for pointing the client at a
// test server.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) error {
		if url == "" {
			return ErrInvalidBaseURL
		}
		c.baseURL = url
		return nil
	}
}

// WithHTTPClient supplies the underlying HTTP client. Its transport is kept
// and wrapped with the header-injecting transport.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		if client == nil {
			c.httpClient = nil
			return nil
		}
		c.httpClient = client
		return nil
	}
}

// WithUserAgent overrides the default User-Agent header value.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithDefaultHeaders adds headers set on every request, alongside the
// authorization and user agent headers.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) error {
		c.defaultHeaders = headers
		return nil
	}
}

// WithTimeout sets the HTTP client timeout. The default is no timeout;
// callers wanting per-call deadlines can also use context cancellation.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout < 0 {
			timeout = 0
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogger enables structured request logging. One entry is emitted per
// HTTP exchange with the request id, method, URL, status and duration.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}
