package deepinfra

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// authTransport injects the default headers on every outgoing request.
type authTransport struct {
	next      http.RoundTripper
	token     string
	userAgent string
	headers   map[string]string
}

func (t *authTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("Authorization", "Bearer "+t.token)
	r.Header.Set("User-Agent", t.userAgent)

	for key, value := range t.headers {
		r.Header.Set(key, value)
	}

	return t.next.RoundTrip(r)
}

// loggingTransport emits one structured log entry per HTTP exchange. Each
// request is tagged with a generated request id, also sent as X-Request-Id.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()
	r.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start)

	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		t.logger.Log(r.Context(), slog.LevelError, "http request failed", attrs...)
		return nil, err
	}

	attrs = append(attrs, slog.Int("status", resp.StatusCode))

	level := slog.LevelInfo
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.logger.Log(r.Context(), level, "http request completed", attrs...)

	return resp, nil
}
