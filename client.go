package deepinfra

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

const (
	// URLDeepInfra is the default API base URL.
	URLDeepInfra = "https://api.deepinfra.com"

	chatCompletionsPath     = "/v1/openai/chat/completions"
	audioTranscriptionsPath = "/v1/openai/audio/transcriptions"

	defaultUserAgent = "deepinfra-go/" + Version
	tracerName       = "github.com/simoneromano96/deepinfra-go"
)

// API is the operation surface of the client. *Client and *TracedClient both
// implement it.
type API interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	AudioTranscription(ctx context.Context, req AudioTranscriptionRequest) (*AudioTranscriptionResponse, error)
}

// Client is a DeepInfra API client. It holds an HTTP client whose transport
// injects the bearer token and user agent on every request. A Client is
// immutable after construction and safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	userAgent      string
	defaultHeaders map[string]string
	logger         *slog.Logger
	timeout        time.Duration
	tracer         trace.Tracer
}

// NewClient builds a client authenticated with the given API token. The token
// is applied as an "Authorization: Bearer <token>" default header on every
// request; it must be non-empty and must not contain characters that are
// illegal in an HTTP header value.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if !validHeaderValue(token) {
		return nil, ErrInvalidToken
	}

	c := &Client{
		baseURL:   URLDeepInfra,
		userAgent: defaultUserAgent,
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	base := http.DefaultTransport
	var inner *http.Client
	if c.httpClient != nil {
		inner = c.httpClient
		if inner.Transport != nil {
			base = inner.Transport
		}
	} else {
		inner = &http.Client{}
	}

	var transport http.RoundTripper = &authTransport{
		next:      base,
		token:     token,
		userAgent: c.userAgent,
		headers:   c.defaultHeaders,
	}
	if c.logger != nil {
		transport = &loggingTransport{next: transport, logger: c.logger}
	}

	c.httpClient = &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
	if c.timeout == 0 {
		c.httpClient.Timeout = inner.Timeout
	}

	return c, nil
}

// validHeaderValue reports whether s can be carried in an HTTP header value.
// Control characters and DEL are rejected.
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b == 0x7f {
			return false
		}
	}
	return true
}

func (c *Client) buildURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c *Client) newRequest(ctx context.Context, path, contentType string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do issues the request and reads the full response body. Exactly one round
// trip per call; no retries.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}
