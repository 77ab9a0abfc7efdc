package deepinfra

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deepinfra_request_duration_seconds",
		Help:    "DeepInfra request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation", "model", "status"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepinfra_requests_total",
		Help: "Total number of DeepInfra requests",
	}, []string{"operation", "model"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepinfra_errors_total",
		Help: "Total number of DeepInfra errors",
	}, []string{"operation", "model", "error_type"})

	tokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deepinfra_tokens_total",
		Help: "Total number of tokens used",
	}, []string{"operation", "model", "token_type"})
)

func recordRequest(operation, model, status string, duration time.Duration) {
	requestDuration.WithLabelValues(operation, model, status).Observe(duration.Seconds())
	requestsTotal.WithLabelValues(operation, model).Inc()
}

func recordError(operation, model, errorType string) {
	errorsTotal.WithLabelValues(operation, model, errorType).Inc()
}

func recordTokens(operation, model string, usage Usage) {
	if usage.PromptTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "completion").Add(float64(usage.CompletionTokens))
	}
	if usage.TotalTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "total").Add(float64(usage.TotalTokens))
	}
}

// TracedClient wraps a Client and records Prometheus metrics for every
// operation: request counts, durations, error classes and token usage.
type TracedClient struct {
	client *Client
}

// WithMetrics returns a metrics-recording view of the client.
func (c *Client) WithMetrics() *TracedClient {
	return &TracedClient{client: c}
}

func (t *TracedClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	start := time.Now()
	status := "success"
	model := req.Model

	defer func() {
		recordRequest("chat_completion", model, status, time.Since(start))
	}()

	resp, err := t.client.ChatCompletion(ctx, req)
	if err != nil {
		status = "error"
		recordError("chat_completion", model, classifyError(err))
		return nil, err
	}

	if resp.Usage != nil {
		recordTokens("chat_completion", model, *resp.Usage)
	}

	return resp, nil
}

func (t *TracedClient) AudioTranscription(ctx context.Context, req AudioTranscriptionRequest) (*AudioTranscriptionResponse, error) {
	start := time.Now()
	status := "success"
	model := req.Model

	defer func() {
		recordRequest("audio_transcription", model, status, time.Since(start))
	}()

	resp, err := t.client.AudioTranscription(ctx, req)
	if err != nil {
		status = "error"
		recordError("audio_transcription", model, classifyError(err))
		return nil, err
	}

	return resp, nil
}

func classifyError(err error) string {
	if err == nil {
		return "none"
	}

	if IsAuthError(err) {
		return "auth"
	}
	if IsRateLimitError(err) {
		return "rate_limit"
	}
	if IsFileNotFound(err) {
		return "file_not_found"
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return "client_error"
		}
		if apiErr.StatusCode >= 500 {
			return "server_error"
		}
		return "api_error"
	}

	return "transport"
}
